package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/config"
	"github.com/abhisek/ctdguide/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ctdguide",
	Short: "Post-approval manufacturing change classifier",
	Long: "ctdguide walks through the post-approval manufacturing change guideline and\n" +
		"tells which reporting tier (AR, IR, Cmin, Cmaj) each change falls into.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog YAML file (overrides CTDGUIDE_CATALOG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides CTDGUIDE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr (overrides CTDGUIDE_LOG_FILE)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig layers flags (highest priority) over CTDGUIDE_* env vars
// over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Log.File = f
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog, or the embedded one.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// env is what most subcommands need: settings, a logger and a catalog.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	cat    *catalog.Catalog
	close  func() error
}

// setup resolves the config, opens the logger and loads the catalog.
// The caller must call env.close.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		closer()
		return nil, err
	}
	logger.Debug("catalog loaded",
		"version", cat.Version(),
		"path", cfg.CatalogPath,
		"topics", len(cat.Topics()),
		"rules", cat.RuleCount(),
	)
	return &env{cfg: cfg, logger: logger, cat: cat, close: closer}, nil
}
