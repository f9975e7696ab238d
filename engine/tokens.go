package engine

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// TOKENS — Multi-valued dimension handling
// ============================================================================
// Genre lists arrive as "Dramas, International Movies, Thrillers". A row's
// list is a set: tokens are trimmed, empty tokens dropped, duplicates within
// the row collapsed. Tokens are NFC-normalized so visually identical labels
// count together.
// ============================================================================

// SplitTokens splits a comma-separated list into distinct non-empty tokens
// in first-seen order.
func SplitTokens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		token := norm.NFC.String(strings.TrimSpace(p))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a label to a URL-safe key.
// "International TV Shows" -> "international-tv-shows".
// "Côte d'Ivoire" -> "cote-d-ivoire".
func Slugify(s string) string {
	// Decompose accented characters, then drop the non-ASCII marks.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
