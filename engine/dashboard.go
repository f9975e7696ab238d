package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/spektr-org/marquee/schema"
)

// ============================================================================
// DASHBOARD — Filter → Aggregate → Build, one pass per interaction
// ============================================================================
// Entry point: BuildDashboard(view, selection, opts...)
//
// Pipeline:
//   1. Apply the year/type selection → SubView
//   2. Count KPIs over the SubView
//   3. Aggregate by type, country, rating, year and genre
//   4. Build the five chart payloads
//   5. Return Dashboard
//
// Nothing is retained between calls; the only shared input is the
// read-only view the caller binds once at startup.
// ============================================================================

// ErrUnknownChart is returned when a chart id is not one of ChartIDs.
var ErrUnknownChart = errors.New("unknown chart")

// chartSpecs lays out the five charts in display order.
var chartSpecs = map[string]ChartSpec{
	ChartTypes:     {ID: ChartTypes, ChartType: "pie", Title: "Distribution by Content Type", XAxis: "Type"},
	ChartCountries: {ID: ChartCountries, ChartType: "bar", Title: "Top 10 Countries by Content", XAxis: "Country"},
	ChartRatings:   {ID: ChartRatings, ChartType: "bar", Title: "Top Ratings", XAxis: "Rating"},
	ChartYears:     {ID: ChartYears, ChartType: "line", Title: "Content Added Over Years", XAxis: "Year"},
	ChartGenres:    {ID: ChartGenres, ChartType: "bar", Title: "Top Genres", XAxis: "Genre"},
}

// BuildDashboard runs the whole pipeline for one selection.
func BuildDashboard(view RecordView, sel Selection, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)
	start := time.Now()

	// 1. Filter → SubView (zero-copy)
	filtered := Filter(view, sel.Years, sel.Types)

	// 2. KPIs
	kpis := BuildKPIs(filtered, cfg.MovieType, cfg.ShowType)

	// 3 + 4. Aggregate and build charts
	charts := make([]*ChartConfig, 0, len(ChartIDs))
	for _, id := range ChartIDs {
		charts = append(charts, buildChartFor(id, filtered, cfg))
	}

	dash := &Dashboard{
		Title:       cfg.Title,
		Description: cfg.Description,
		Heading:     fmt.Sprintf("Displaying %d titles", kpis.Total),
		KPIs:        kpis,
		Controls: Controls{
			YearOptions: YearOptions(view),
			TypeOptions: UniqueValues(view, schema.ColType),
			Selected:    sel,
		},
		Charts: charts,
	}

	cfg.Logger.Debug("dashboard built",
		"rows", view.Len(),
		"filtered", filtered.Len(),
		"years", len(sel.Years),
		"types", len(sel.Types),
		"duration", time.Since(start),
	)
	return dash
}

// BuildChartByID runs the pipeline for a single chart.
func BuildChartByID(view RecordView, sel Selection, id string, opts ...Option) (*ChartConfig, error) {
	if _, ok := chartSpecs[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
	cfg := applyOptions(opts)
	filtered := Filter(view, sel.Years, sel.Types)
	return buildChartFor(id, filtered, cfg), nil
}

// Chart returns the chart with the given id.
func (d *Dashboard) Chart(id string) (*ChartConfig, error) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, id)
}

func buildChartFor(id string, filtered RecordView, cfg *config) *ChartConfig {
	var groups []Group
	switch id {
	case ChartTypes:
		groups = CountByType(filtered)
	case ChartCountries:
		groups = Top(CountByCountry(filtered), cfg.TopN)
	case ChartRatings:
		groups = Top(CountByRating(filtered), cfg.TopN)
	case ChartYears:
		groups = CountByYear(filtered)
	case ChartGenres:
		groups = Top(CountByGenre(filtered), cfg.TopN)
	}

	spec := chartSpecs[id]
	if id == ChartCountries {
		spec.Title = fmt.Sprintf("Top %d Countries by Content", cfg.TopN)
	}
	return BuildChart(spec, groups, cfg.Palette)
}
