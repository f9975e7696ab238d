package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spektr-org/marquee/schema"
)

// ============================================================================
// AGGREGATORS — Grouping, Counting, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
//
// Ordering contract:
//   CountBy / CountByGenre  → count descending, ties in first-seen order
//   CountByYear             → year ascending
// An empty view yields an empty, non-nil slice.
// ============================================================================

// Sort modes understood by SortGroups.
const (
	SortCountDesc = "count_desc"
	SortYearAsc   = "year_asc"
)

// CountBy counts rows per distinct value of a dimension.
// Rows with an empty value are not counted.
func CountBy(view RecordView, dimension string) []Group {
	groups := groupBySingle(view, dimension)
	SortGroups(groups, SortCountDesc)
	return groups
}

// CountByType counts rows per content type.
func CountByType(view RecordView) []Group {
	return CountBy(view, schema.ColType)
}

// CountByCountry counts rows per country label.
func CountByCountry(view RecordView) []Group {
	return CountBy(view, schema.ColCountry)
}

// CountByRating counts rows per rating label.
func CountByRating(view RecordView) []Group {
	return CountBy(view, schema.ColRating)
}

// CountByYear counts rows per year added, ascending by year.
// Rows without a year added are not counted.
func CountByYear(view RecordView) []Group {
	groups := groupBySingle(view, schema.DimYearAdded)
	SortGroups(groups, SortYearAsc)
	return groups
}

// CountByGenre splits each row's genre list into tokens and counts rows per
// token. A row contributes at most one count to each of its genres.
func CountByGenre(view RecordView) []Group {
	return countTokens(view, schema.ColListedIn)
}

// Top keeps the first n groups. n <= 0 keeps everything.
func Top(groups []Group, n int) []Group {
	if n > 0 && len(groups) > n {
		return groups[:n]
	}
	return groups
}

// TotalCount sums the counts of all groups.
func TotalCount(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

func countTokens(view RecordView, dimension string) []Group {
	counts := make(map[string]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		for _, token := range SplitTokens(view.Dimension(i, dimension)) {
			if _, exists := counts[token]; !exists {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	groups := make([]Group, 0, len(order))
	for _, token := range order {
		groups = append(groups, Group{
			Key:   token,
			Label: token,
			Count: counts[token],
		})
	}
	SortGroups(groups, SortCountDesc)
	return groups
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups in place. Sorting is stable, so equal keys keep
// the order they were grouped in.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortCountDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	case SortYearAsc:
		sort.SliceStable(groups, func(i, j int) bool { return yearOrder(groups[i].Key) < yearOrder(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// yearOrder parses a year key; unparsable keys sort last.
func yearOrder(key string) int {
	y, err := strconv.Atoi(key)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return y
}

// ============================================================================
// OPTIONS & FORMATTING UTILITIES
// ============================================================================

// UniqueValues returns distinct non-empty values for a dimension in
// first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// YearOptions returns the distinct known years added, ascending.
func YearOptions(view RecordView) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for i := 0; i < view.Len(); i++ {
		y, err := strconv.Atoi(view.Dimension(i, schema.DimYearAdded))
		if err != nil || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}
