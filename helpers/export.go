// Package helpers writes dashboard payloads in export formats:
// CSV ready for Sheets/Excel and plain or indented JSON.
package helpers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spektr-org/marquee/engine"
)

// ============================================================================
// CSV OUTPUT — chart and table payloads as Sheets-ready CSV
// ============================================================================

// WriteChartCSV writes a chart as two columns: x-axis label and y-axis value.
// An empty chart still writes its header row.
func WriteChartCSV(w io.Writer, chart *engine.ChartConfig) error {
	cw := csv.NewWriter(w)
	writeChartRows(cw, chart)
	cw.Flush()
	return cw.Error()
}

// WriteTableCSV writes a table's columns, rows and optional total.
func WriteTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	if len(headers) > 0 {
		_ = cw.Write(headers)
	}
	for _, row := range table.Rows {
		_ = cw.Write(row)
	}
	if table.Summary != nil && len(table.Columns) > 1 {
		total := make([]string, len(table.Columns))
		total[0] = table.Summary.Label
		for i, c := range table.Columns {
			if v, ok := table.Summary.Values[c.Key]; ok {
				total[i] = v
			}
		}
		_ = cw.Write(total)
	}

	cw.Flush()
	return cw.Error()
}

// WriteDashboardCSV writes every chart of a dashboard, each preceded by
// a title row and separated by a blank line.
func WriteDashboardCSV(w io.Writer, d *engine.Dashboard) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Metric", "Value"})
	_ = cw.Write([]string{"Total Titles", FormatNumber(float64(d.KPIs.Total))})
	_ = cw.Write([]string{"Movies", FormatNumber(float64(d.KPIs.Movies))})
	_ = cw.Write([]string{"TV Shows", FormatNumber(float64(d.KPIs.Shows))})

	for _, chart := range d.Charts {
		_ = cw.Write([]string{})
		_ = cw.Write([]string{chart.Title})
		writeChartRows(cw, chart)
	}

	cw.Flush()
	return cw.Error()
}

func writeChartRows(cw *csv.Writer, chart *engine.ChartConfig) {
	xLabel := chart.XAxis
	yLabel := chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	_ = cw.Write([]string{xLabel, yLabel})
	for _, p := range chart.Points() {
		_ = cw.Write([]string{p.Label, FormatNumber(p.Value)})
	}
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

// WriteJSON encodes v on one line, or indented when pretty is set.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// FormatNumber renders whole numbers without decimals, others with two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
