package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/worksite/scaffold"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(app)
		return app.Start(ctx)
	},
}

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the Work page as static HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(app)
		if err := app.Build(cmd.Context(), buildOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Static site written to %s\n", buildOut)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch content from the CMS and store a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(app)
		snap, err := app.Sync(cmd.Context())
		if err != nil {
			return err
		}
		app.Logger.Debug("snapshot stored", zap.Int64("id", snap.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Stored snapshot %d from %s (%d bytes)\n", snap.ID, snap.Source, snap.Size)
		return nil
	},
}

var initURL string

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter config and content fixture",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		created, err := scaffold.Write(dir, scaffold.Data{
			SiteName: scaffold.TitleCase(filepath.Base(abs)),
			SiteURL:  initURL,
		})
		for _, path := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nNext: worksite serve --config", filepath.Join(dir, "worksite.yaml"))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	initCmd.Flags().StringVar(&initURL, "url", "http://localhost:3000", "canonical site URL")
}
