package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the shape of the catalogue file
// ============================================================================
// The catalogue is a fixed-schema CSV. Unlike an auto-discovered dataset,
// every column has a known role: dimensions used for grouping/filtering,
// free text carried through for display, and the date column the loader
// derives year/month buckets from.
// ============================================================================

// Column keys of the catalogue CSV (after NormalizeHeader).
const (
	ColShowID      = "show_id"
	ColType        = "type"
	ColTitle       = "title"
	ColDirector    = "director"
	ColCast        = "cast"
	ColCountry     = "country"
	ColDateAdded   = "date_added"
	ColReleaseYear = "release_year"
	ColRating      = "rating"
	ColDuration    = "duration"
	ColListedIn    = "listed_in"
	ColDescription = "description"
)

// Derived dimension keys (not present in the file).
const (
	DimYearAdded  = "year_added"
	DimMonthAdded = "month_added"
)

// RequiredColumns must all be present in the header or the file is rejected.
var RequiredColumns = []string{
	ColTitle, ColType, ColDirector, ColCast, ColCountry,
	ColDateAdded, ColRating, ColDuration, ColListedIn,
}

// Config describes the complete shape of the dataset.
type Config struct {
	Name        string          `json:"name"`
	Version     string          `json:"version,omitempty"`
	Description string          `json:"description,omitempty"`
	Dimensions  []DimensionMeta `json:"dimensions"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Groupable   bool   `json:"groupable"`
	Filterable  bool   `json:"filterable"`
	Required    bool   `json:"required,omitempty"`
	// Sentinel replaces an absent value after loading ("" = no fill).
	Sentinel       string `json:"sentinel,omitempty"`
	MultiValued    bool   `json:"multiValued,omitempty"` // comma-separated set
	IsTemporal     bool   `json:"isTemporal,omitempty"`
	TemporalFormat string `json:"temporalFormat,omitempty"`
	DerivedFrom    string `json:"derivedFrom,omitempty"`
}

// Sentinel labels for absent text fields.
const (
	NotSpecified = "Not Specified"
	NotRated     = "Not Rated"
	Unknown      = "Unknown"
)

// Catalogue returns the schema of the catalogue file.
func Catalogue() Config {
	return Config{
		Name:        "Catalogue",
		Version:     "1.0",
		Description: "Streaming catalogue titles with type, country, rating, genre and date added",
		Dimensions: []DimensionMeta{
			{Key: ColShowID, DisplayName: "Show ID"},
			{Key: ColType, DisplayName: "Type", Groupable: true, Filterable: true, Required: true},
			{Key: ColTitle, DisplayName: "Title", Required: true},
			{Key: ColDirector, DisplayName: "Director", Required: true, Sentinel: NotSpecified},
			{Key: ColCast, DisplayName: "Cast", Required: true, Sentinel: NotSpecified},
			{Key: ColCountry, DisplayName: "Country", Groupable: true, Required: true, Sentinel: NotSpecified},
			{Key: ColDateAdded, DisplayName: "Date Added", Required: true, IsTemporal: true, TemporalFormat: "January 2, 2006"},
			{Key: ColReleaseYear, DisplayName: "Release Year"},
			{Key: ColRating, DisplayName: "Rating", Groupable: true, Required: true, Sentinel: NotRated},
			{Key: ColDuration, DisplayName: "Duration", Required: true, Sentinel: Unknown},
			{Key: ColListedIn, DisplayName: "Genre", Groupable: true, Required: true, MultiValued: true},
			{Key: ColDescription, DisplayName: "Description"},
			{Key: DimYearAdded, DisplayName: "Year", Groupable: true, Filterable: true, IsTemporal: true, TemporalFormat: "2006", DerivedFrom: ColDateAdded},
			{Key: DimMonthAdded, DisplayName: "Month", Groupable: true, IsTemporal: true, DerivedFrom: ColDateAdded},
		},
	}
}

// Dimension looks up a dimension by key.
func (c Config) Dimension(key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}

// SentinelFor returns the fill value for a column, or "" if it has none.
func (c Config) SentinelFor(key string) string {
	if d, ok := c.Dimension(key); ok {
		return d.Sentinel
	}
	return ""
}

// DisplayName returns the human label for a key, falling back to the key.
func (c Config) DisplayName(key string) string {
	if d, ok := c.Dimension(key); ok {
		return d.DisplayName
	}
	return key
}

// ============================================================================
// HEADER VALIDATION
// ============================================================================

// HeaderError reports required columns missing from a CSV header.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// IndexHeader maps normalized column keys to their position in the header.
// Returns a *HeaderError when any of RequiredColumns is absent.
// Duplicate columns keep their first position.
func IndexHeader(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}
	return index, nil
}

// NormalizeHeader converts "Date Added" → "date_added".
// A leading UTF-8 byte order mark is dropped.
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
