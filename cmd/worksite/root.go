package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/worksite"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile  string
	logLevel string
	dev      bool

	rootCmd = &cobra.Command{
		Use:   "worksite",
		Short: "Render the Work page of a content-managed studio site",
		Long: `worksite resolves the Work page content from a headless CMS (falling back
to the last stored snapshot and a local YAML fixture) and serves it over HTTP
or writes it out as static HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file (WORKSITE_* env vars override it)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&dev, "dev", false, "human readable console logs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// newApp loads the config, applies the command line overrides and builds an
// initialized App with its logger.
func newApp() (*worksite.App, error) {
	cfg, err := worksite.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dev {
		cfg.Dev = true
	}
	logger, err := worksite.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	app := worksite.New(cfg, worksite.WithLogger(logger))
	if err := app.Init(); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *worksite.App) {
	if err := app.Close(); err != nil {
		app.Logger.Warn("close", zap.Error(err))
	}
	_ = app.Logger.Sync()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "worksite %s\n", version)
	},
}
