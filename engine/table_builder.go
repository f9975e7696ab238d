package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a chart payload
// ============================================================================
// Every chart has a tabular twin: label, count and share of the chart's
// total. The HTML page renders it under the chart and the CLI prints it.
// ============================================================================

// BuildTable produces a TableData from a chart.
func BuildTable(chart *ChartConfig) *TableData {
	points := chart.Points()
	if len(points) == 0 {
		return &TableData{
			Title:   chart.Title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	groupLabel := chart.XAxis
	if groupLabel == "" {
		groupLabel = "Label"
	}

	columns := []Column{
		{Key: "label", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "count", Label: chart.YAxis, Type: "number", Align: "right"},
		{Key: "share", Label: "Share", Type: "percent", Align: "right"},
	}

	var total float64
	for _, p := range points {
		total += p.Value
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Label,
			FormatInt(int(p.Value)),
			formatShare(p.Value, total),
		})
	}

	return &TableData{
		Title:   chart.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				"count": FormatInt(int(total)),
			},
		},
	}
}

func formatShare(v, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", v/total*100)
}
