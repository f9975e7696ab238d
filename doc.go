// Package marquee is a dashboard for the Netflix titles catalogue.
//
// The catalogue CSV is loaded once per process and flows one way:
//
//	catalogue (load, clean) → engine (filter, aggregate, build) → server | tui | CLI
//
// Packages:
//
//	catalogue  loads netflix_titles.csv into Title values and caches them
//	engine     filters by year added and type, counts, and builds charts, tables and KPIs
//	server     serves the HTML page, SVG charts and the JSON/CSV API
//	tui        terminal dashboard
//	helpers    CSV and JSON export
//	schema     column names, sentinels and header checks
//
// The engine never mutates the catalogue; every selection re-runs the
// pipeline over the shared read-only view.
package marquee
