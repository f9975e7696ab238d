package schema

import (
	"errors"
	"testing"
)

// ============================================================================
// HEADER TESTS
// ============================================================================

var catalogueHeader = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

func TestIndexHeaderCatalogue(t *testing.T) {
	index, err := IndexHeader(catalogueHeader)
	if err != nil {
		t.Fatalf("IndexHeader failed: %v", err)
	}
	if index[ColTitle] != 2 {
		t.Errorf("title index = %d, want 2", index[ColTitle])
	}
	if index[ColListedIn] != 10 {
		t.Errorf("listed_in index = %d, want 10", index[ColListedIn])
	}
}

func TestIndexHeaderNormalizesNames(t *testing.T) {
	headers := []string{"\ufeffTitle", " Type ", "Director", "Cast", "Country", "Date Added", "Rating", "Duration", "Listed-In"}
	index, err := IndexHeader(headers)
	if err != nil {
		t.Fatalf("IndexHeader failed: %v", err)
	}
	if index[ColDateAdded] != 5 {
		t.Errorf("date_added index = %d, want 5", index[ColDateAdded])
	}
	if index[ColTitle] != 0 {
		t.Errorf("title index = %d, want 0 (BOM should be stripped)", index[ColTitle])
	}
}

func TestIndexHeaderMissingColumns(t *testing.T) {
	_, err := IndexHeader([]string{"title", "type", "country"})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}

	var headerErr *HeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected *HeaderError, got %T", err)
	}
	want := []string{ColDirector, ColCast, ColDateAdded, ColRating, ColDuration, ColListedIn}
	if len(headerErr.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", headerErr.Missing, want)
	}
	for i := range want {
		if headerErr.Missing[i] != want[i] {
			t.Errorf("missing[%d] = %q, want %q", i, headerErr.Missing[i], want[i])
		}
	}
}

func TestCatalogueSentinels(t *testing.T) {
	sch := Catalogue()
	tests := []struct {
		key  string
		want string
	}{
		{ColDirector, NotSpecified},
		{ColCast, NotSpecified},
		{ColCountry, NotSpecified},
		{ColRating, NotRated},
		{ColDuration, Unknown},
		{ColTitle, ""},
		{"no_such_column", ""},
	}
	for _, tt := range tests {
		if got := sch.SentinelFor(tt.key); got != tt.want {
			t.Errorf("SentinelFor(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestCatalogueRequiredMatchesRequiredColumns(t *testing.T) {
	sch := Catalogue()
	required := map[string]bool{}
	for _, d := range sch.Dimensions {
		if d.Required {
			required[d.Key] = true
		}
	}
	if len(required) != len(RequiredColumns) {
		t.Fatalf("schema marks %d required dimensions, RequiredColumns has %d", len(required), len(RequiredColumns))
	}
	for _, col := range RequiredColumns {
		if !required[col] {
			t.Errorf("%s should be marked Required in Catalogue()", col)
		}
	}
}

func TestDisplayName(t *testing.T) {
	sch := Catalogue()
	if got := sch.DisplayName(ColListedIn); got != "Genre" {
		t.Errorf("DisplayName(listed_in) = %q, want Genre", got)
	}
	if got := sch.DisplayName("mystery"); got != "mystery" {
		t.Errorf("DisplayName fallback = %q, want mystery", got)
	}
}
