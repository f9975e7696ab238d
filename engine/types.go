package engine

import (
	"strconv"

	"github.com/spektr-org/marquee/schema"
)

// ============================================================================
// MARQUEE ENGINE TYPES — Catalogue Filtering and Counting
// ============================================================================
// Everything the dashboard shows is a count of rows grouped by one field.
// The engine reads rows through RecordView, narrows them with Filters and
// turns the survivors into Groups, which the builders convert into chart,
// table and KPI payloads.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row keyed by dimension name.
// Used for ad-hoc views; the catalogue itself binds typed structs through
// DomainAdapter.
type Record struct {
	Dimensions map[string]string `json:"dimensions"`
}

// ============================================================================
// FILTERS
// ============================================================================

// Filters define which records to include.
// Keys are dimension names, values are the allowed values.
// OR within a dimension, AND across dimensions.
//
// A key that is present constrains its dimension even when its list is
// empty: an empty list admits nothing. A key that is absent does not
// constrain at all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no dimension is constrained.
func (f Filters) IsEmpty() bool {
	return len(f.Dimensions) == 0
}

// Selection is the user's choice on the two dashboard controls.
type Selection struct {
	Years []int    `json:"years"`
	Types []string `json:"types"`
}

// Filters converts a Selection into dimension filters. Both dimensions are
// always constrained, so an empty Years or Types admits nothing.
func (s Selection) Filters() Filters {
	years := make([]string, 0, len(s.Years))
	for _, y := range s.Years {
		years = append(years, strconv.Itoa(y))
	}
	types := make([]string, 0, len(s.Types))
	types = append(types, s.Types...)

	return Filters{Dimensions: map[string][]string{
		schema.DimYearAdded: years,
		schema.ColType:      types,
	}}
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is one (label, count) pair of an aggregate.
// Builders convert these into ChartConfig, TableData or KPIs.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // rows in this group, nil for token groups
}

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart identifiers, in the order the dashboard lays them out.
const (
	ChartTypes     = "types"
	ChartCountries = "countries"
	ChartRatings   = "ratings"
	ChartYears     = "years"
	ChartGenres    = "genres"
)

// ChartIDs lists every chart the dashboard renders.
var ChartIDs = []string{ChartTypes, ChartCountries, ChartRatings, ChartYears, ChartGenres}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ID         string        `json:"id"`
	ChartType  string        `json:"chartType"` // "pie", "bar", "line"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// Points returns the data of the first series, or nil.
func (c *ChartConfig) Points() []ChartPoint {
	if c == nil || len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Data
}

// IsEmpty reports whether the chart has no data points.
func (c *ChartConfig) IsEmpty() bool {
	return len(c.Points()) == 0
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Key   string  `json:"key"` // URL-safe slug of Label
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// DASHBOARD TYPES
// ============================================================================

// KPIs are the three headline counts.
type KPIs struct {
	Total  int `json:"total"`
	Movies int `json:"movies"`
	Shows  int `json:"shows"`
}

// Controls describe the filter widgets: every option and what is selected.
type Controls struct {
	YearOptions []int     `json:"yearOptions"`
	TypeOptions []string  `json:"typeOptions"`
	Selected    Selection `json:"selected"`
}

// Dashboard is the render-ready output of one pipeline run.
type Dashboard struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Heading     string         `json:"heading"`
	KPIs        KPIs           `json:"kpis"`
	Controls    Controls       `json:"controls"`
	Charts      []*ChartConfig `json:"charts"`
}
