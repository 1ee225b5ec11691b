// Package parse converts raw export cells into typed values.
//
// Every parser is total: a missing or malformed cell yields nil rather than an
// error, so one noisy cell never aborts an import.
package parse

import (
	"math"
	"strconv"
	"strings"
)

// NotRankedPosition is the bucket value given to cells that say the domain is
// not ranked at all. It is not a real rank.
const NotRankedPosition = 21

// maxTrackedPosition is the last position inside the tracked window.
const maxTrackedPosition = 20

var notRankedPhrases = []string{"no está", "not in"}

// IsMissing reports whether a cell carries no data: blank, "-" or "N/D".
func IsMissing(s string) bool {
	v := strings.TrimSpace(s)
	return v == "" || v == "-" || strings.EqualFold(v, "N/D")
}

// Text returns the trimmed cell, or nil when missing.
func Text(s string) *string {
	if IsMissing(s) {
		return nil
	}
	v := strings.TrimSpace(s)
	return &v
}

// Percent parses "12,5%" or "12.5" as 12.5.
func Percent(s string) *float64 {
	if IsMissing(s) {
		return nil
	}
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return parseFloat(strings.Replace(v, ",", ".", 1))
}

// Currency parses "$1,25", "1.25 €" or "0,80" as a float.
func Currency(s string) *float64 {
	if IsMissing(s) {
		return nil
	}
	v := strings.NewReplacer("$", "", "€", "").Replace(s)
	return parseFloat(strings.Replace(strings.TrimSpace(v), ",", ".", 1))
}

// Int parses integers written with "." or "," thousands separators.
func Int(s string) *int64 {
	if IsMissing(s) {
		return nil
	}
	v := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(s))
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Position parses a ranking cell. The boolean reports whether the position
// falls outside the top 20, including "not in top 20" style cells.
func Position(s string) (*int, bool) {
	if IsMissing(s) {
		return nil, false
	}
	v := strings.TrimSpace(s)
	lower := strings.ToLower(v)
	for _, phrase := range notRankedPhrases {
		if strings.Contains(lower, phrase) {
			p := NotRankedPosition
			return &p, true
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Ranks may carry a suffix: "5,0", "5.0" or "12 (new)".
		var ok bool
		if n, ok = leadingInt(v); !ok {
			return nil, false
		}
	}
	if n < 1 {
		return nil, false
	}
	return &n, n > maxTrackedPosition
}

// leadingInt reads the run of digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == 0 {
		return 0, false
	}
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
