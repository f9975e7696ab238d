// Root command for the marquee CLI.
package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/internal/config"
	"github.com/spektr-org/marquee/internal/di"
	"github.com/spektr-org/marquee/internal/logger"
)

// Global flag values.
var (
	flagConfigFile string
	flagEnvFile    string
	flagDataPath   string
	flagLogLevel   string
	flagTopN       int
)

// cfg and log are resolved by PersistentPreRunE for every subcommand.
var (
	cfg *config.Config
	log *logger.Logger
)

// flagKeys maps flag names onto config keys. Only flags given on the
// command line override the environment and the config file.
var flagKeys = map[string]string{
	"data":      config.KeyDataPath,
	"log-level": config.KeyLogLevel,
	"top-n":     config.KeyTopN,
	"addr":      config.KeyServerAddr,
}

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Marquee is a dashboard for the Netflix catalogue",
	Long: `Marquee loads the Netflix titles CSV once and shows it as a dashboard:
KPIs plus charts by type, country, rating, year added and genre, filtered
by the years and types you select.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config for version
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return loadConfig(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config", "", "config file (default: ./marquee.yaml or ~/.marquee/marquee.yaml)")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "file of MARQUEE_* variables to load if present")
	pf.StringVarP(&flagDataPath, "data", "d", "", "catalogue CSV file (default: netflix_titles.csv)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default: info)")
	pf.IntVar(&flagTopN, "top-n", 0, "entries kept by the country, rating and genre charts (default: 10)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(summaryCmd)
}

// loadConfig resolves configuration and the logger for cmd.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}

	v, err := config.NewViper(flagConfigFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	log = newLogger(cfg)
	log.Debug("configuration loaded",
		"env", cfg.Env,
		"data_path", cfg.DataPath,
		"top_n", cfg.TopN,
		"config_file", v.ConfigFileUsed(),
	)
	return nil
}

// newLogger writes JSON in production and colored lines elsewhere.
func newLogger(cfg *config.Config) *logger.Logger {
	format := "pretty"
	if cfg.IsProduction() {
		format = "json"
	}
	return logger.New(logger.Config{
		Format:      format,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Environment: cfg.Env,
		AddSource:   !cfg.IsProduction() && cfg.LogLevel == "debug",
	})
}

// openCatalogue builds the container and loads the catalogue view.
// Callers shut the returned injector down when done.
func openCatalogue() (*do.RootScope, engine.RecordView, error) {
	injector := di.NewContainer(cfg, log)

	cache, err := do.Invoke[*catalogue.Cache](injector)
	if err != nil {
		injector.Shutdown()
		return nil, nil, err
	}
	view, err := cache.View()
	if err != nil {
		injector.Shutdown()
		return nil, nil, err
	}
	return injector, view, nil
}
