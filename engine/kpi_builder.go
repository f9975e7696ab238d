package engine

import (
	"fmt"

	"github.com/spektr-org/marquee/schema"
)

// ============================================================================
// KPI BUILDER — Headline counts
// ============================================================================

// BuildKPIs counts the total rows and the rows of the movie and show types.
func BuildKPIs(view RecordView, movieType, showType string) KPIs {
	kpis := KPIs{Total: view.Len()}
	for i := 0; i < view.Len(); i++ {
		switch view.Dimension(i, schema.ColType) {
		case movieType:
			kpis.Movies++
		case showType:
			kpis.Shows++
		}
	}
	return kpis
}

// ============================================================================
// TEXT SUMMARY
// ============================================================================

// Summarize renders a dashboard as short human-readable lines:
// heading, KPIs, then the leading entry of every chart.
func Summarize(d *Dashboard) []string {
	lines := []string{
		d.Heading,
		fmt.Sprintf("Total Titles: %s | Movies: %s | TV Shows: %s",
			FormatInt(d.KPIs.Total), FormatInt(d.KPIs.Movies), FormatInt(d.KPIs.Shows)),
	}

	for _, c := range d.Charts {
		points := c.Points()
		if len(points) == 0 {
			lines = append(lines, fmt.Sprintf("%s: no data", c.Title))
			continue
		}
		if c.ID == ChartYears {
			first, last := points[0], points[len(points)-1]
			lines = append(lines, fmt.Sprintf("%s: %s–%s, peak %s",
				c.Title, first.Label, last.Label, peakLabel(points)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s (%s)",
			c.Title, points[0].Label, FormatInt(int(points[0].Value))))
	}
	return lines
}

// peakLabel returns "label (count)" for the highest point; first wins ties.
func peakLabel(points []ChartPoint) string {
	best := points[0]
	for _, p := range points[1:] {
		if p.Value > best.Value {
			best = p
		}
	}
	return fmt.Sprintf("%s (%s)", best.Label, FormatInt(int(best.Value)))
}
