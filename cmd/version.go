package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and embedded catalog versions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ctdguide", version)
		fmt.Fprintln(out, "catalog", catalog.Default().Version())
	},
}
