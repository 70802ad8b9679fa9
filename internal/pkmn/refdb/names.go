package refdb

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// key folds a display name for lookup: case and accents are ignored, so
// "poke ball" finds "Poké Ball". Gender symbols are not marks and stay
// significant.
func key(name string) string {
	s := strings.TrimSpace(name)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// SameName reports whether two display names refer to the same entry.
func SameName(a, b string) bool {
	return key(a) == key(b)
}
