package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/marquee/engine"
	"github.com/spektr-org/marquee/helpers"
	"github.com/spektr-org/marquee/internal/di"
)

// Output formats.
const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatText   = "text"
	formatCSV    = "csv"
)

var (
	flagYears  []string
	flagTypes  []string
	flagFormat string
	flagOut    string
	flagChart  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard for a selection",
	Long: `Summary runs the dashboard pipeline once and prints the result.
Without --year or --type every known value is selected. An explicitly empty
list (--type "") selects nothing.`,
	Example: `  marquee summary --format text
  marquee summary --year 2019,2020 --type Movie --format pretty
  marquee summary --chart genres --format csv --out genres.csv`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	f := summaryCmd.Flags()
	f.StringSliceVar(&flagYears, "year", nil, "years added to include (default: all)")
	f.StringSliceVar(&flagTypes, "type", nil, "types to include (default: all)")
	f.StringVarP(&flagFormat, "format", "f", formatText, "output format: json, pretty, text, csv")
	f.StringVarP(&flagOut, "out", "o", "", "write output to file instead of stdout")
	f.StringVar(&flagChart, "chart", "", "print one chart: "+strings.Join(engine.ChartIDs, ", "))
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if !validFormat(flagFormat) {
		return fmt.Errorf("unknown format %q (want json, pretty, text or csv)", flagFormat)
	}

	injector, view, err := openCatalogue()
	if err != nil {
		return err
	}
	defer injector.Shutdown()

	sel, err := selectionFromFlags(cmd.Flags(), engine.DefaultSelection(view))
	if err != nil {
		return err
	}
	d := engine.BuildDashboard(view, sel, di.EngineOptions(cfg, log)...)

	w := cmd.OutOrStdout()
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if flagChart != "" {
		chart, err := d.Chart(flagChart)
		if err != nil {
			return err
		}
		err = renderChart(w, chart, flagFormat)
		if err == nil && flagOut != "" {
			log.Info("chart written", "path", flagOut, "chart", flagChart, "format", flagFormat)
		}
		return err
	}

	err = renderDashboard(w, d, flagFormat)
	if err == nil && flagOut != "" {
		log.Info("summary written", "path", flagOut, "format", flagFormat)
	}
	return err
}

func validFormat(format string) bool {
	switch format {
	case formatJSON, formatPretty, formatText, formatCSV:
		return true
	}
	return false
}

// selectionFromFlags reads --year and --type. A flag that was not given
// takes its values from defaults.
func selectionFromFlags(flags *pflag.FlagSet, defaults engine.Selection) (engine.Selection, error) {
	sel := engine.Selection{Years: defaults.Years, Types: defaults.Types}

	if flags.Changed("year") {
		sel.Years = []int{}
		for _, raw := range flagYears {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			y, err := strconv.Atoi(raw)
			if err != nil {
				return engine.Selection{}, fmt.Errorf("invalid --year %q: not a number", raw)
			}
			sel.Years = append(sel.Years, y)
		}
	}

	if flags.Changed("type") {
		sel.Types = []string{}
		for _, t := range flagTypes {
			if t = strings.TrimSpace(t); t != "" {
				sel.Types = append(sel.Types, t)
			}
		}
	}
	return sel, nil
}

// ============================================================================
// RENDERING
// ============================================================================

type chartOutput struct {
	Chart *engine.ChartConfig `json:"chart"`
	Table *engine.TableData   `json:"table"`
}

func renderDashboard(w io.Writer, d *engine.Dashboard, format string) error {
	switch format {
	case formatJSON, formatPretty:
		return helpers.WriteJSON(w, d, format == formatPretty)
	case formatCSV:
		return helpers.WriteDashboardCSV(w, d)
	case formatText:
		_, err := fmt.Fprintln(w, strings.Join(engine.Summarize(d), "\n"))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func renderChart(w io.Writer, chart *engine.ChartConfig, format string) error {
	switch format {
	case formatJSON, formatPretty:
		return helpers.WriteJSON(w, chartOutput{Chart: chart, Table: engine.BuildTable(chart)}, format == formatPretty)
	case formatCSV:
		return helpers.WriteTableCSV(w, engine.BuildTable(chart))
	case formatText:
		return writeTableText(w, engine.BuildTable(chart))
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeTableText prints a table as aligned plain-text columns.
func writeTableText(w io.Writer, table *engine.TableData) error {
	if _, err := fmt.Fprintln(w, table.Title); err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No result.")
		return err
	}

	width := len(table.Columns[0].Label)
	for _, row := range table.Rows {
		width = max(width, len([]rune(row[0])))
	}

	fmt.Fprintf(w, "%-*s  %8s  %7s\n", width, table.Columns[0].Label, table.Columns[1].Label, table.Columns[2].Label)
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%-*s  %8s  %7s\n", width, row[0], row[1], row[2])
	}
	if table.Summary != nil {
		_, err := fmt.Fprintf(w, "%-*s  %8s\n", width, table.Summary.Label, table.Summary.Values["count"])
		return err
	}
	return nil
}
