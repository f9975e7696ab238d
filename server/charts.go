package server

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/marquee/engine"
)

// ============================================================================
// SVG CHARTS: ChartConfig → go-chart renderables
// ============================================================================
// go-chart refuses to render pies and bars without values and lines with
// fewer than two points. Empty charts get a placeholder and single-point
// lines are drawn as one bar.
// ============================================================================

const (
	chartWidth  = 640
	chartHeight = 400
)

// Placeholder captions.
const (
	emptyChartMessage  = "No titles match the current selection"
	brokenChartMessage = "Chart unavailable"
)

// RenderSVG writes c as an SVG document.
func RenderSVG(w io.Writer, c *engine.ChartConfig) error {
	if c.IsEmpty() {
		return renderPlaceholder(w, c.Title, emptyChartMessage)
	}
	switch c.ChartType {
	case "pie":
		return renderPie(w, c)
	case "line":
		if len(c.Points()) < 2 {
			return renderBar(w, c)
		}
		return renderLine(w, c)
	default:
		return renderBar(w, c)
	}
}

func renderPie(w io.Writer, c *engine.ChartConfig) error {
	points := c.Points()
	values := make([]chart.Value, len(points))
	for i, p := range points {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%s)", p.Label, engine.FormatInt(int(p.Value))),
			Value: p.Value,
			Style: chart.Style{FillColor: colorAt(c.Colors, i)},
		}
	}

	pie := chart.PieChart{
		Title:  c.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

func renderBar(w io.Writer, c *engine.ChartConfig) error {
	points := c.Points()
	fill := colorAt(c.Colors, 0)

	bars := make([]chart.Value, len(points))
	maxValue := 0.0
	for i, p := range points {
		bars[i] = chart.Value{
			Label: truncateLabel(p.Label, 14),
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
		maxValue = math.Max(maxValue, p.Value)
	}

	bar := chart.BarChart{
		Title:    c.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(len(points)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(maxValue)},
		},
		Bars: bars,
	}
	return bar.Render(chart.SVG, w)
}

func renderLine(w io.Writer, c *engine.ChartConfig) error {
	points := c.Points()
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	ticks := make([]chart.Tick, 0, len(points))
	maxValue := 0.0

	for i, p := range points {
		x, err := strconv.ParseFloat(p.Label, 64)
		if err != nil {
			x = float64(i)
		}
		xs = append(xs, x)
		ys = append(ys, p.Value)
		ticks = append(ticks, chart.Tick{Value: x, Label: p.Label})
		maxValue = math.Max(maxValue, p.Value)
	}

	xMin, xMax := xs[0], xs[len(xs)-1]
	if xMax <= xMin {
		xMin, xMax = xMin-1, xMax+1
	}

	stroke := colorAt(c.Colors, 0)
	graph := chart.Chart{
		Title:  c.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  c.XAxis,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(maxValue)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: stroke,
					StrokeWidth: 2,
					DotColor:    stroke,
					DotWidth:    3,
				},
			},
		},
	}
	return graph.Render(chart.SVG, w)
}

// renderPlaceholder writes a blank SVG carrying the chart title and a caption.
func renderPlaceholder(w io.Writer, title, message string) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
		`<text x="50%%" y="40" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#333333">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#999999">%s</text>`+
		`</svg>`,
		chartWidth, chartHeight, chartWidth, chartHeight, html.EscapeString(title), html.EscapeString(message))
	return err
}

func colorAt(colors []string, i int) drawing.Color {
	if len(colors) == 0 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(colors[i%len(colors)], "#"))
}

// niceMax pads the top of the y axis so the tallest bar has headroom.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return math.Ceil(v * 1.1)
}

func barWidth(n int) int {
	if n <= 0 {
		return 40
	}
	w := (chartWidth - 80) / n * 2 / 3
	if w > 60 {
		return 60
	}
	if w < 12 {
		return 12
	}
	return w
}

func truncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
