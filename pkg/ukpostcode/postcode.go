package ukpostcode

import (
	"regexp"
	"strings"
)

// fullPattern matches a complete UK postcode without the separating space,
// e.g. "SW1A1AA". Outward code: area letters, district number, optional
// sub-district letter. Inward code: digit plus two letters.
var fullPattern = regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\d[A-Z]{2}$`)

// OutcodePattern matches an outward code on its own, e.g. "SW1A" or "W2".
// Exported so free-text parsers can scan for area-level postcode mentions.
var OutcodePattern = regexp.MustCompile(`\b([A-Z]{1,2}\d[A-Z\d]?)\b`)

// Normalize strips whitespace, upper-cases, and re-inserts the canonical
// space before the final three characters. Returns the input upper-cased
// and trimmed when it is too short to split.
func Normalize(raw string) string {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(cleaned) <= 3 {
		return cleaned
	}
	return cleaned[:len(cleaned)-3] + " " + cleaned[len(cleaned)-3:]
}

// IsValidFormat reports whether raw is syntactically a UK postcode. It is a
// format check only; resolution against real postcodes is the lookup
// service's job.
func IsValidFormat(raw string) bool {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(cleaned) < 5 || len(cleaned) > 7 {
		return false
	}
	return fullPattern.MatchString(cleaned)
}

// Outcode returns the outward part of a normalized postcode ("SW1A" from
// "SW1A 1AA"). Falls back to the whole string when there is no space.
func Outcode(postcode string) string {
	if i := strings.IndexByte(postcode, ' '); i > 0 {
		return postcode[:i]
	}
	return postcode
}
