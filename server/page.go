package server

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/spektr-org/marquee/engine"
)

//go:embed templates/*.html
var templates embed.FS

// option is one entry of a multi-select control.
type option struct {
	Value    string
	Selected bool
}

// panel is one chart cell of the page grid.
type panel struct {
	Chart  *engine.ChartConfig
	Table  *engine.TableData
	SVGURL template.URL
	CSVURL template.URL
	Wide   bool
}

// pageData contains data for the dashboard page template.
type pageData struct {
	Dashboard *engine.Dashboard
	Years     []option
	Types     []option
	Panels    []panel
	APIURL    template.URL
}

func mustParsePage() *template.Template {
	return template.Must(template.New("dashboard.html").
		Funcs(template.FuncMap{"formatInt": engine.FormatInt}).
		ParseFS(templates, "templates/dashboard.html"))
}

func newPageData(d *engine.Dashboard) pageData {
	sel := d.Controls.Selected
	query := EncodeSelection(sel).Encode()

	selectedYears := make(map[int]bool, len(sel.Years))
	for _, y := range sel.Years {
		selectedYears[y] = true
	}
	years := make([]option, len(d.Controls.YearOptions))
	for i, y := range d.Controls.YearOptions {
		years[i] = option{Value: strconv.Itoa(y), Selected: selectedYears[y]}
	}

	selectedTypes := make(map[string]bool, len(sel.Types))
	for _, t := range sel.Types {
		selectedTypes[t] = true
	}
	types := make([]option, len(d.Controls.TypeOptions))
	for i, t := range d.Controls.TypeOptions {
		types[i] = option{Value: t, Selected: selectedTypes[t]}
	}

	panels := make([]panel, 0, len(d.Charts))
	for _, c := range d.Charts {
		panels = append(panels, panel{
			Chart:  c,
			Table:  engine.BuildTable(c),
			SVGURL: template.URL("/charts/" + c.ID + ".svg?" + query),
			CSVURL: template.URL("/api/v1/charts/" + c.ID + ".csv?" + query),
			// Genres span the full row
			Wide: c.ID == engine.ChartGenres,
		})
	}

	return pageData{
		Dashboard: d,
		Years:     years,
		Types:     types,
		Panels:    panels,
		APIURL:    template.URL("/api/v1/dashboard?" + query),
	}
}
