package di

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/internal/config"
	"github.com/spektr-org/marquee/internal/logger"
	"github.com/spektr-org/marquee/server"
)

const shutdownTimeout = 10 * time.Second

// ProvideCatalogue provides the process-wide catalogue cache.
func ProvideCatalogue(i do.Injector) (*catalogue.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalogue.NewCache(cfg.DataPath, log.WithComponent("catalogue").Logger), nil
}

// EngineOptions maps configuration onto dashboard pipeline options.
func EngineOptions(cfg *config.Config, log *logger.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithTopN(cfg.TopN),
		engine.WithTitle(cfg.Dashboard.Title, cfg.Dashboard.Description),
		engine.WithTypeLabels(cfg.Dashboard.MovieType, cfg.Dashboard.ShowType),
		engine.WithPalette(cfg.Dashboard.Palette...),
	}
	if log != nil {
		opts = append(opts, engine.WithLogger(log.WithComponent("engine").Logger))
	}
	return opts
}

// DashboardServerHandle wraps server.Server with Shutdownable.
type DashboardServerHandle struct {
	*server.Server
}

// Shutdown implements do.Shutdownable.
func (h *DashboardServerHandle) Shutdown() error {
	h.Server.Close()
	return nil
}

// ProvideDashboardServer provides the HTTP handler tree.
func ProvideDashboardServer(i do.Injector) (*DashboardServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cache := do.MustInvoke[*catalogue.Cache](i)

	srv := server.New(cache, server.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Engine:         EngineOptions(cfg, log),
	}, log.WithComponent("http").Logger)

	return &DashboardServerHandle{Server: srv}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the listening HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*DashboardServerHandle](i)

	return &HTTPServerHandle{Server: &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}}, nil
}
