package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spektr-org/marquee/engine"
)

// ErrInvalidSelection is returned for query parameters that cannot be parsed.
var ErrInvalidSelection = errors.New("invalid selection")

// Query parameter names.
const (
	paramYear     = "year"
	paramType     = "type"
	paramFiltered = "filtered"
)

// ParseSelection reads the year/type selection from query values.
//
// Both keys may repeat and may hold comma-separated lists. A key that is
// absent selects every value in defaults, unless filtered=1 is set, which
// marks the request as coming from the form: then an absent key is an
// empty selection. A key that is present but empty is always empty.
func ParseSelection(q url.Values, defaults engine.Selection) (engine.Selection, error) {
	filtered := q.Get(paramFiltered) == "1"

	sel := engine.Selection{Years: []int{}, Types: []string{}}

	if raw, ok := q[paramYear]; ok {
		for _, v := range splitValues(raw) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return engine.Selection{}, fmt.Errorf("%w: year %q is not a number", ErrInvalidSelection, v)
			}
			sel.Years = append(sel.Years, y)
		}
	} else if !filtered {
		sel.Years = append(sel.Years, defaults.Years...)
	}

	if raw, ok := q[paramType]; ok {
		sel.Types = append(sel.Types, splitValues(raw)...)
	} else if !filtered {
		sel.Types = append(sel.Types, defaults.Types...)
	}

	return sel, nil
}

// EncodeSelection renders sel as query values that ParseSelection reads back.
func EncodeSelection(sel engine.Selection) url.Values {
	q := url.Values{}
	q.Set(paramFiltered, "1")
	for _, y := range sel.Years {
		q.Add(paramYear, strconv.Itoa(y))
	}
	for _, t := range sel.Types {
		q.Add(paramType, t)
	}
	return q
}

func splitValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
