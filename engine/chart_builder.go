package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from aggregated groups
// ============================================================================
// A chart is always produced, even for zero groups: the empty state is a
// chart with an empty series, so every surface degrades the same way.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#E50914", "#4F46E5", "#10B981", "#F59E0B", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartSpec describes one chart before data is attached.
type ChartSpec struct {
	ID        string
	ChartType string // "pie", "bar", "line"
	Title     string
	XAxis     string
	YAxis     string
}

// BuildChart produces a ChartConfig from a ChartSpec and aggregated groups.
func BuildChart(spec ChartSpec, groups []Group, palette []string) *ChartConfig {
	chartType := spec.ChartType
	if chartType == "" {
		chartType = "bar"
	}
	yAxis := spec.YAxis
	if yAxis == "" {
		yAxis = "Count"
	}
	if len(palette) == 0 {
		palette = defaultColors
	}

	config := &ChartConfig{
		ID:         spec.ID,
		ChartType:  chartType,
		Title:      spec.Title,
		XAxis:      spec.XAxis,
		YAxis:      yAxis,
		ShowLegend: chartType == "pie",
		ShowGrid:   chartType != "pie",
		Series:     buildSingleSeries(groups, yAxis),
	}

	// Pie slices get one color each; bar/line charts color the series.
	if chartType == "pie" {
		config.Colors = assignColors(len(groups), palette)
	} else {
		config.Colors = assignColors(len(config.Series), palette)
		config.Series[0].Color = palette[0]
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Key:   Slugify(g.Label),
			Label: g.Label,
			Value: float64(g.Count),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func assignColors(count int, palette []string) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
