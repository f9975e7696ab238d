// Package catalogue loads the title catalogue CSV into memory once and
// exposes it to the engine as a read-only RecordView.
package catalogue

import (
	"strconv"
	"time"

	"github.com/spektr-org/marquee/engine"
)

// Title is one row of the catalogue after cleaning.
//
// Director, Cast, Country, Rating and Duration are never empty once loaded.
// DateAdded, YearAdded and MonthAdded are either all set or all nil.
type Title struct {
	ShowID      string     `json:"showId,omitempty"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Director    string     `json:"director"`
	Cast        string     `json:"cast"`
	Country     string     `json:"country"`
	DateAdded   *time.Time `json:"dateAdded,omitempty"`
	YearAdded   *int       `json:"yearAdded,omitempty"`
	MonthAdded  *int       `json:"monthAdded,omitempty"`
	ReleaseYear *int       `json:"releaseYear,omitempty"`
	Rating      string     `json:"rating"`
	Duration    string     `json:"duration"`
	ListedIn    string     `json:"listedIn"`
	Description string     `json:"description,omitempty"`
}

// Genres returns the distinct genre tokens of ListedIn in first-seen order.
func (t Title) Genres() []string {
	return engine.SplitTokens(t.ListedIn)
}

// HasDate reports whether date_added was parseable.
func (t Title) HasDate() bool {
	return t.DateAdded != nil
}

// yearString renders an optional year, "" when absent.
func yearString(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}
