// Package di wires the marquee services together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/internal/config"
	"github.com/spektr-org/marquee/internal/logger"
)

// NewContainer creates the DI container. Config and logger are resolved by
// the CLI before any service exists, so they enter as values.
func NewContainer(cfg *config.Config, log *logger.Logger) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)

	// Data
	do.Provide(injector, ProvideCatalogue)

	// Server
	do.Provide(injector, ProvideDashboardServer)
	do.Provide(injector, ProvideHTTPServer)

	return injector
}

// Bootstrap loads the catalogue and builds the HTTP server.
// A catalogue that cannot be read fails startup.
func Bootstrap(injector *do.RootScope) error {
	cache, err := do.Invoke[*catalogue.Cache](injector)
	if err != nil {
		return err
	}
	if _, err := cache.View(); err != nil {
		return err
	}

	_, err = do.Invoke[*HTTPServerHandle](injector)
	return err
}
