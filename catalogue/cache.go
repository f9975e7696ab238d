package catalogue

import (
	"log/slog"
	"sync"
	"time"

	"github.com/spektr-org/marquee/engine"
)

// Cache loads the catalogue file exactly once per process.
// The slice it hands out is shared and must not be modified.
type Cache struct {
	path   string
	logger *slog.Logger

	once   sync.Once
	titles []Title
	view   engine.RecordView
	stats  Stats
	err    error
}

// NewCache returns a cache for the file at path. Nothing is read until
// the first call to Titles or View.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{path: path, logger: logger}
}

func (c *Cache) load() {
	c.once.Do(func() {
		start := time.Now()
		c.titles, c.stats, c.err = LoadWithStats(c.path)
		if c.err != nil {
			c.logger.Error("catalogue load failed", "path", c.path, "error", c.err)
			return
		}
		c.view = NewView(c.titles)
		if c.stats.Skipped > 0 {
			c.logger.Debug("skipped malformed records", "path", c.path, "skipped", c.stats.Skipped)
		}
		c.logger.Info("catalogue loaded",
			"path", c.path,
			"titles", c.stats.Loaded,
			"undated", c.stats.Undated,
			"duration", time.Since(start),
		)
	})
}

// Titles returns the loaded titles, or the error of the first load.
func (c *Cache) Titles() ([]Title, error) {
	c.load()
	return c.titles, c.err
}

// View returns the loaded titles as a RecordView.
func (c *Cache) View() (engine.RecordView, error) {
	c.load()
	return c.view, c.err
}

// Stats returns the statistics of the first load.
func (c *Cache) Stats() Stats {
	c.load()
	return c.stats
}

// Path returns the file the cache reads.
func (c *Cache) Path() string { return c.path }
