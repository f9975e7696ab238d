package engine

import "github.com/spektr-org/marquee/schema"

// ============================================================================
// FILTERS — Strict Set-Membership Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent), zero data copy.
//
// An empty allowed-set is a real constraint that admits nothing; there is
// no implicit "all" fallback. Callers wanting every value pass every value
// (see DefaultSelection).
// ============================================================================

// Filter returns the rows whose year added is in years AND whose type is in
// types. Rows without a year added never match.
func Filter(view RecordView, years []int, types []string) RecordView {
	return ApplyFilters(view, Selection{Years: years, Types: types}.Filters())
}

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// No constrained dimension = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	// Pre-build lookup sets; an empty set short-circuits to no rows
	sets := make(map[string]map[string]bool, len(filters.Dimensions))
	for dim, allowed := range filters.Dimensions {
		if len(allowed) == 0 {
			return newSubView(view, []int{})
		}
		sets[dim] = toSet(allowed)
	}

	// Single pass: record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			val := view.Dimension(i, dim)
			if val == "" || !set[val] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// DefaultSelection selects every known year and every known type, the
// state the dashboard opens in.
func DefaultSelection(view RecordView) Selection {
	return Selection{
		Years: YearOptions(view),
		Types: UniqueValues(view, schema.ColType),
	}
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
