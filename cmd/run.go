package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/app"
	"github.com/abhisek/ctdguide/internal/config"
	"github.com/abhisek/ctdguide/internal/logging"
)

// runApp loads the catalog and launches the TUI. The TUI owns the
// terminal, so logs go to a file under the user cache dir unless
// --log-file says otherwise.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		cfg.Log.File = p
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting tui", "catalog_version", cat.Version(), "catalog_path", cfg.CatalogPath)

	return app.Run(app.Options{Catalog: cat, Logger: logger})
}
