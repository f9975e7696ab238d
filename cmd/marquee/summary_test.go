package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/internal/config"
	"github.com/spektr-org/marquee/internal/logger"
)

const titlesCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Alpha,,,United States,"January 5, 2019",2018,PG-13,90 min,"Dramas, Comedies",
s2,TV Show,Beta,,,India,"March 1, 2020",2020,TV-MA,1 Season,International TV Shows,
s3,Movie,Gamma,,,India,"June 9, 2020",2019,TV-14,101 min,Dramas,
`

func testDashboard(t *testing.T, sel engine.Selection) *engine.Dashboard {
	t.Helper()
	rec := func(typ, year, genres string) engine.Record {
		return engine.Record{Dimensions: map[string]string{
			"type": typ, "year_added": year, "country": "India", "rating": "TV-MA", "listed_in": genres,
		}}
	}
	view := engine.NewSliceView([]engine.Record{
		rec("Movie", "2019", "Dramas"),
		rec("TV Show", "2020", "Docuseries, Dramas"),
	})
	return engine.BuildDashboard(view, sel)
}

func TestSelectionFromFlags(t *testing.T) {
	defaults := engine.Selection{Years: []int{2019, 2020}, Types: []string{"Movie", "TV Show"}}

	newFlags := func(args ...string) *pflag.FlagSet {
		fs := pflag.NewFlagSet("summary", pflag.ContinueOnError)
		fs.StringSliceVar(&flagYears, "year", nil, "")
		fs.StringSliceVar(&flagTypes, "type", nil, "")
		require.NoError(t, fs.Parse(args))
		return fs
	}

	tests := []struct {
		name string
		args []string
		want engine.Selection
	}{
		{"defaults", nil, defaults},
		{"years only", []string{"--year", "2020"}, engine.Selection{Years: []int{2020}, Types: defaults.Types}},
		{"repeated and comma", []string{"--year", "2019, 2020", "--type", "Movie", "--type", "TV Show"}, defaults},
		{"explicit empty type", []string{"--type", ""}, engine.Selection{Years: defaults.Years, Types: []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectionFromFlags(newFlags(tt.args...), defaults)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := selectionFromFlags(newFlags("--year", "twenty"), defaults)
	assert.ErrorContains(t, err, `invalid --year "twenty"`)
}

func TestRenderDashboard(t *testing.T) {
	d := testDashboard(t, engine.Selection{Years: []int{2019, 2020}, Types: []string{"Movie", "TV Show"}})

	var buf bytes.Buffer
	require.NoError(t, renderDashboard(&buf, d, formatText))
	assert.True(t, strings.HasPrefix(buf.String(), "Displaying 2 titles\n"))
	assert.Contains(t, buf.String(), "Total Titles: 2 | Movies: 1 | TV Shows: 1")
	assert.Contains(t, buf.String(), "Top Genres: Dramas (2)")

	buf.Reset()
	require.NoError(t, renderDashboard(&buf, d, formatJSON))
	assert.Contains(t, buf.String(), `"heading":"Displaying 2 titles"`)

	buf.Reset()
	require.NoError(t, renderDashboard(&buf, d, formatCSV))
	assert.True(t, strings.HasPrefix(buf.String(), "Metric,Value\n"))

	assert.Error(t, renderDashboard(&buf, d, "xml"))
}

func TestRenderChart(t *testing.T) {
	d := testDashboard(t, engine.Selection{Years: []int{2019, 2020}, Types: []string{"Movie", "TV Show"}})
	chart, err := d.Chart(engine.ChartGenres)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderChart(&buf, chart, formatCSV))
	assert.Equal(t, "Genre,Count,Share\nDramas,2,66.7%\nDocuseries,1,33.3%\nTotal,3,\n", buf.String())

	buf.Reset()
	require.NoError(t, renderChart(&buf, chart, formatText))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Top Genres", lines[0])
	assert.Contains(t, lines[2], "Dramas")
	assert.Contains(t, lines[2], "66.7%")
	assert.True(t, strings.HasPrefix(lines[4], "Total"))

	buf.Reset()
	require.NoError(t, renderChart(&buf, chart, formatPretty))
	assert.Contains(t, buf.String(), "\n  \"chart\": {")
}

func TestRenderChart_Empty(t *testing.T) {
	d := testDashboard(t, engine.Selection{Years: []int{}, Types: []string{}})
	chart, err := d.Chart(engine.ChartRatings)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderChart(&buf, chart, formatText))
	assert.Equal(t, "Top Ratings\nNo result.\n", buf.String())
}

func TestSummaryCommand(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(data, []byte(titlesCSV), 0o600))
	out := filepath.Join(dir, "years.csv")

	rootCmd.SetArgs([]string{
		"summary",
		"--data", data,
		"--env-file", "",
		"--log-level", "error",
		"--chart", "years",
		"--format", "csv",
		"--out", out,
	})
	require.NoError(t, rootCmd.Execute())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Year,Count,Share\n2019,1,33.3%\n2020,2,66.7%\nTotal,3,\n", string(got))
	assert.Equal(t, data, cfg.DataPath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestNewLogger(t *testing.T) {
	prod := newLogger(&config.Config{Env: "production", LogLevel: "debug"})
	assert.IsType(t, &slog.JSONHandler{}, prod.Handler())

	dev := newLogger(&config.Config{Env: "development", LogLevel: "warn"})
	assert.IsType(t, &logger.PrettyHandler{}, dev.Handler())
	assert.False(t, dev.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, dev.Enabled(context.Background(), slog.LevelWarn))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "marquee "+version+"\n", buf.String())
}
