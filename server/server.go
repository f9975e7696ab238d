// Package server exposes the dashboard over HTTP: an HTML page, SVG charts
// and a JSON/CSV API, all computed per request from the cached catalogue.
package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/internal/ratelimit"
)

// Source provides the read-only catalogue view. *catalogue.Cache satisfies it.
type Source interface {
	View() (engine.RecordView, error)
}

// StatsSource is a Source that also reports how its data was loaded.
// /health includes the statistics when the source provides them.
type StatsSource interface {
	Source
	Stats() catalogue.Stats
	Path() string
}

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	Engine         []engine.Option
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	source  Source
	opts    Options
	router  *chi.Mux
	limiter *ratelimit.KeyedRateLimiter
	page    *template.Template
	logger  *slog.Logger
}

// New creates a server with all routes configured.
func New(source Source, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		source:  source,
		opts:    opts,
		router:  chi.NewRouter(),
		limiter: ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst),
		page:    mustParsePage(),
		logger:  logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.rateLimit)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	// Page and chart images
	s.router.Get("/", s.handlePage)
	s.router.Get("/charts/{file}", s.handleChartSVG)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins(),
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/options", s.handleOptions)
		r.Get("/charts/{chart}", s.handleChart)
	})

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found", s.logger)
	})
}

func (s *Server) corsOrigins() []string {
	if len(s.opts.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.opts.CORSOrigins
}
