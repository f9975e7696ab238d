package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/helpers"
)

// chartPayload is the JSON body of GET /api/v1/charts/{chart}.
type chartPayload struct {
	Chart *engine.ChartConfig `json:"chart"`
	Table *engine.TableData   `json:"table"`
}

// optionsPayload is the JSON body of GET /api/v1/options.
type optionsPayload struct {
	Years  []int    `json:"years"`
	Types  []string `json:"types"`
	Charts []string `json:"charts"`
}

// healthPayload is the JSON body of GET /health.
type healthPayload struct {
	Status    string           `json:"status"`
	Titles    int              `json:"titles"`
	Catalogue *catalogueHealth `json:"catalogue,omitempty"`
}

// catalogueHealth describes the loaded file.
type catalogueHealth struct {
	Path string `json:"path"`
	catalogue.Stats
}

// selection resolves the catalogue view and the request's selection.
// It writes the error response itself and returns ok=false on failure.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (engine.RecordView, engine.Selection, bool) {
	view, err := s.source.View()
	if err != nil {
		handleError(w, err, s.logger)
		return nil, engine.Selection{}, false
	}
	sel, err := ParseSelection(r.URL.Query(), engine.DefaultSelection(view))
	if err != nil {
		handleError(w, err, s.logger)
		return nil, engine.Selection{}, false
	}
	return view, sel, true
}

// handleHealth reports whether the catalogue is loaded.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	view, err := s.source.View()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalogue data unavailable", s.logger)
		return
	}
	payload := healthPayload{Status: "ok", Titles: view.Len()}
	if src, ok := s.source.(StatsSource); ok {
		payload.Catalogue = &catalogueHealth{Path: src.Path(), Stats: src.Stats()}
	}
	writeJSON(w, http.StatusOK, payload, s.logger)
}

// handleDashboard returns KPIs, controls and all chart payloads.
// GET /api/v1/dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.BuildDashboard(view, sel, s.opts.Engine...), s.logger)
}

// handleOptions returns every selectable year and type.
// GET /api/v1/options
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	view, err := s.source.View()
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	all := engine.DefaultSelection(view)
	writeJSON(w, http.StatusOK, optionsPayload{
		Years:  all.Years,
		Types:  all.Types,
		Charts: engine.ChartIDs,
	}, s.logger)
}

// handleChart returns one chart as JSON, or as CSV with a .csv suffix.
// GET /api/v1/charts/{chart}
// GET /api/v1/charts/{chart}.csv
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id, asCSV := strings.CutSuffix(chi.URLParam(r, "chart"), ".csv")

	view, sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	chart, err := engine.BuildChartByID(view, sel, id, s.opts.Engine...)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	if !asCSV {
		writeJSON(w, http.StatusOK, chartPayload{Chart: chart, Table: engine.BuildTable(chart)}, s.logger)
		return
	}

	var buf bytes.Buffer
	if err := helpers.WriteChartCSV(&buf, chart); err != nil {
		handleError(w, err, s.logger)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".csv"))
	_, _ = w.Write(buf.Bytes())
}

// handleChartSVG renders one chart as an SVG image.
// GET /charts/{chart}.svg
func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".svg")
	if !ok {
		writeError(w, http.StatusNotFound, "not found", s.logger)
		return
	}

	view, sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	chart, err := engine.BuildChartByID(view, sel, id, s.opts.Engine...)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	var buf bytes.Buffer
	if err := RenderSVG(&buf, chart); err != nil {
		// Show a blank chart rather than a broken image.
		s.logger.Warn("Chart render failed", "chart", id, "error", err)
		buf.Reset()
		_ = renderPlaceholder(&buf, chart.Title, brokenChartMessage)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// handlePage renders the HTML dashboard.
// GET /
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view, sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	dash := engine.BuildDashboard(view, sel, s.opts.Engine...)

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, newPageData(dash)); err != nil {
		s.logger.Error("Failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
