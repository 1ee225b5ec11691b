// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UngroupedLabel is assigned to keywords whose export row carries no group.
const UngroupedLabel = "ungrouped"

// Keyword is a tracked search term, shared by every import of a project.
type Keyword struct {
	CreatedAt      time.Time
	ProjectID      string
	Text           string
	NormalizedText string
	Group          string
	ID             int64
}

// NormalizeKeyword folds accents, lower-cases and collapses whitespace so that
// "Cómo  Hacer" and "como hacer" identify the same keyword.
func NormalizeKeyword(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// GroupOrDefault returns group, or UngroupedLabel when group is blank.
func GroupOrDefault(group string) string {
	if g := strings.TrimSpace(group); g != "" {
		return g
	}
	return UngroupedLabel
}
