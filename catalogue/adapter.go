package catalogue

import (
	"strconv"

	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/schema"
)

// Adapter exposes Title fields as engine dimensions.
var Adapter = engine.NewDomainAdapter[Title]().
	Dimension(schema.ColTitle, func(t Title) string { return t.Title }).
	Dimension(schema.ColType, func(t Title) string { return t.Type }).
	Dimension(schema.ColDirector, func(t Title) string { return t.Director }).
	Dimension(schema.ColCast, func(t Title) string { return t.Cast }).
	Dimension(schema.ColCountry, func(t Title) string { return t.Country }).
	Dimension(schema.ColRating, func(t Title) string { return t.Rating }).
	Dimension(schema.ColDuration, func(t Title) string { return t.Duration }).
	Dimension(schema.ColListedIn, func(t Title) string { return t.ListedIn }).
	Dimension(schema.DimYearAdded, func(t Title) string { return yearString(t.YearAdded) }).
	Dimension(schema.DimMonthAdded, func(t Title) string {
		if t.MonthAdded == nil {
			return ""
		}
		return strconv.Itoa(*t.MonthAdded)
	}).
	Dimension(schema.ColDateAdded, func(t Title) string {
		if t.DateAdded == nil {
			return ""
		}
		return t.DateAdded.Format("2006-01-02")
	})

// NewView binds titles to a RecordView.
func NewView(titles []Title) engine.RecordView {
	return Adapter.Bind(titles)
}
