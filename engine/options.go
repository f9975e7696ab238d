package engine

import "log/slog"

// ============================================================================
// ENGINE OPTIONS — Functional options for BuildDashboard()
// ============================================================================

// Defaults used when no option overrides them.
const (
	DefaultTitle       = "Netflix Content Dashboard"
	DefaultDescription = "An interactive dashboard to explore Netflix's catalogue by type, year, country, rating, and genre."
	DefaultMovieType   = "Movie"
	DefaultShowType    = "TV Show"
)

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN        int      // truncation for country, rating and genre charts
	MovieType   string   // type label counted by the Movies KPI
	ShowType    string   // type label counted by the TV Shows KPI
	Title       string   // page title
	Description string   // page description
	Palette     []string // chart colors
	Logger      *slog.Logger
}

// WithTopN sets how many countries, ratings and genres the bar charts keep.
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithTypeLabels overrides the type values the Movies and TV Shows KPIs count.
func WithTypeLabels(movie, show string) Option {
	return func(c *config) {
		c.MovieType = movie
		c.ShowType = show
	}
}

// WithTitle sets the dashboard title and description.
func WithTitle(title, description string) Option {
	return func(c *config) {
		c.Title = title
		c.Description = description
	}
}

// WithPalette replaces the chart color palette.
func WithPalette(colors ...string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

// WithLogger routes pipeline debug logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:        10,
		MovieType:   DefaultMovieType,
		ShowType:    DefaultShowType,
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Palette:     defaultColors,
		Logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
