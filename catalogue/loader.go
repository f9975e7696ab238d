package catalogue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/marquee/schema"
)

// ============================================================================
// LOADER — Parses the catalogue CSV into []Title
// ============================================================================
// File-level problems (missing file, unreadable header, missing columns)
// fail the load with ErrDataUnavailable. Row-level problems never do:
// malformed records are skipped and counted, unparseable dates become nil,
// and absent text fields get their sentinel.
// ============================================================================

// ErrDataUnavailable is returned when the catalogue cannot be loaded at all.
var ErrDataUnavailable = errors.New("catalogue data unavailable")

// dateLayouts are tried in order against the trimmed date_added value.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"2 January 2006",
	"01/02/2006",
	time.RFC3339,
}

// Stats describes the outcome of one load.
type Stats struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Undated int `json:"undated"`
}

// Load reads the catalogue file at path.
func Load(path string) ([]Title, error) {
	titles, _, err := LoadWithStats(path)
	return titles, err
}

// LoadWithStats reads the catalogue file at path and reports load statistics.
func LoadWithStats(path string) ([]Title, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer f.Close()
	return parse(f)
}

// Parse reads a catalogue from r.
func Parse(r io.Reader) ([]Title, error) {
	titles, _, err := parse(r)
	return titles, err
}

func parse(r io.Reader) ([]Title, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("%w: empty file", ErrDataUnavailable)
		}
		return nil, stats, fmt.Errorf("%w: failed to read header: %w", ErrDataUnavailable, err)
	}
	index, err := schema.IndexHeader(headers)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	// Short rows are padded with sentinels; rows with extra fields are
	// misaligned and dropped.
	reader.FieldsPerRecord = -1

	sch := schema.Catalogue()
	titles := make([]Title, 0, 1024)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		if len(row) > len(headers) {
			stats.Skipped++
			continue
		}

		t := buildTitle(row, index, sch)
		if !t.HasDate() {
			stats.Undated++
		}
		titles = append(titles, t)
	}

	stats.Loaded = len(titles)
	return titles, stats, nil
}

func buildTitle(row []string, index map[string]int, sch schema.Config) Title {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	filled := func(col string) string {
		if v := field(col); v != "" {
			return v
		}
		return sch.SentinelFor(col)
	}

	t := Title{
		ShowID:      field(schema.ColShowID),
		Title:       field(schema.ColTitle),
		Type:        field(schema.ColType),
		Director:    filled(schema.ColDirector),
		Cast:        filled(schema.ColCast),
		Country:     filled(schema.ColCountry),
		Rating:      filled(schema.ColRating),
		Duration:    filled(schema.ColDuration),
		ListedIn:    field(schema.ColListedIn),
		Description: field(schema.ColDescription),
		ReleaseYear: parseYear(field(schema.ColReleaseYear)),
	}

	if d, ok := ParseDate(field(schema.ColDateAdded)); ok {
		year, month := d.Year(), int(d.Month())
		t.DateAdded = &d
		t.YearAdded = &year
		t.MonthAdded = &month
	}
	return t
}

// ParseDate parses a date_added value against the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseYear(s string) *int {
	if s == "" {
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &y
}
