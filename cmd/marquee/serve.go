package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/marquee/internal/di"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard page, chart images and JSON API",
	Long: `Serve loads the catalogue, then serves the dashboard page at /, chart
images at /charts/{id}.svg and the JSON API under /api/v1. A catalogue that
cannot be read stops startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default: :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	injector := di.NewContainer(cfg, log)
	if err := di.Bootstrap(injector); err != nil {
		log.WithError(err).Error("Failed to bootstrap server", "data_path", cfg.DataPath)
		injector.Shutdown()
		return err
	}
	httpSrv := do.MustInvoke[*di.HTTPServerHandle](injector)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("dashboard listening", "addr", httpSrv.Addr, "env", cfg.Env)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server gracefully...")

		// The container shuts services down in reverse dependency order
		if err := injector.Shutdown(); err != nil {
			log.Error("Shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
