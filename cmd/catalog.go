package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/catalogdiff"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate, compare and export catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Validate a catalog file (default: the configured catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.CatalogPath = args[0]
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		src := cfg.CatalogPath
		if src == "" {
			src = "embedded catalog"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s, %d sections, %d topics, %d rules)\n",
			src, cat.Version(), len(cat.Sections()), len(cat.Topics()), cat.RuleCount())
		return nil
	},
}

var catalogDiffCmd = &cobra.Command{
	Use:   "diff OLD [NEW]",
	Short: "Compare two catalog files (NEW defaults to the configured catalog)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		oldCat, err := catalog.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		if len(args) == 2 {
			cfg.CatalogPath = args[1]
		}
		newCat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		return catalogdiff.Compare(oldCat, newCat).Write(cmd.OutOrStdout())
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured catalog to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case catalog.FormatYAML, catalog.FormatJSON:
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		return cat.Export(cmd.OutOrStdout(), format)
	},
}

func init() {
	catalogExportCmd.Flags().String("format", catalog.FormatYAML, "Output format: yaml or json")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogDiffCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
