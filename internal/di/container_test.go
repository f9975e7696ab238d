package di

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/internal/config"
	"github.com/spektr-org/marquee/internal/logger"
)

const titlesCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Alpha,,,United States,"January 5, 2019",2018,PG-13,90 min,Dramas,
s2,TV Show,Beta,,,India,"March 1, 2020",2020,TV-MA,1 Season,International TV Shows,
`

func testConfig(dataPath string) *config.Config {
	return &config.Config{
		Env:      "development",
		LogLevel: "info",
		DataPath: dataPath,
		TopN:     5,
		Dashboard: config.DashboardConfig{
			Title:     "Catalogue",
			MovieType: "Movie",
			ShowType:  "TV Show",
		},
		Server: config.ServerConfig{
			Addr:         "127.0.0.1:0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
	}
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(titlesCSV), 0o600))
	return path
}

func TestBootstrap(t *testing.T) {
	injector := NewContainer(testConfig(writeCSV(t)), logger.Discard())
	require.NoError(t, Bootstrap(injector))

	cache := do.MustInvoke[*catalogue.Cache](injector)
	titles, err := cache.Titles()
	require.NoError(t, err)
	assert.Len(t, titles, 2)

	httpSrv := do.MustInvoke[*HTTPServerHandle](injector)
	assert.Equal(t, "127.0.0.1:0", httpSrv.Addr)
	assert.Equal(t, time.Second, httpSrv.ReadTimeout)

	rec := httptest.NewRecorder()
	httpSrv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	injector.Shutdown()
	assert.ErrorIs(t, httpSrv.ListenAndServe(), http.ErrServerClosed)
}

func TestBootstrap_MissingData(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.csv"))
	injector := NewContainer(cfg, logger.Discard())

	err := Bootstrap(injector)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogue.ErrDataUnavailable)
}

func TestEngineOptions(t *testing.T) {
	cfg := testConfig("unused.csv")
	cfg.TopN = 1
	cfg.Dashboard = config.DashboardConfig{
		Title:       "Film Night",
		Description: "What to watch",
		MovieType:   "Film",
		ShowType:    "Series",
		Palette:     []string{"#112233"},
	}

	view := engine.NewSliceView([]engine.Record{
		{Dimensions: map[string]string{"type": "Film", "year_added": "2020", "country": "India"}},
		{Dimensions: map[string]string{"type": "Series", "year_added": "2020", "country": "Japan"}},
		{Dimensions: map[string]string{"type": "Movie", "year_added": "2020", "country": "Japan"}},
	})
	d := engine.BuildDashboard(view, engine.DefaultSelection(view), EngineOptions(cfg, logger.Discard())...)

	assert.Equal(t, "Film Night", d.Title)
	assert.Equal(t, "What to watch", d.Description)
	assert.Equal(t, engine.KPIs{Total: 3, Movies: 1, Shows: 1}, d.KPIs)

	countries, err := d.Chart(engine.ChartCountries)
	require.NoError(t, err)
	assert.Equal(t, "Top 1 Countries by Content", countries.Title)
	assert.Len(t, countries.Points(), 1)
	assert.Equal(t, "#112233", countries.Colors[0])
}
