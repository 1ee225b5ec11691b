// Package scoring holds the per-keyword heuristics: search intent, CTR-based
// uplift and the recommended action. Everything here is pure.
package scoring

import (
	"regexp"

	"github.com/Veraticus/rankflow/internal/model"
)

// Marker groups are matched against the accent-folded keyword, in order.
var (
	commercialMarkers = regexp.MustCompile(
		`\b(buy|price|cost|cheap|deal|sale|discount|hiring|services|agency|` +
			`comprar|precio|presupuesto|barato|oferta|descuento|contratar|agencia|servicios)\b`)
	informationalMarkers = regexp.MustCompile(
		`\b(how|what|why|guide|tutorial|examples|tips|best|` +
			`como|que es|guia|consejos|ejemplos)\b`)
	investigationMarkers = regexp.MustCompile(
		`\b(review|vs|comparison|best|opiniones|comparativa|mejor)\b`)
)

// ClassifyIntent returns the search intent of a keyword. Commercial markers
// win over informational ones, informational over comparison markers, and
// a keyword without markers is informational.
func ClassifyIntent(keyword string) model.Intent {
	k := model.NormalizeKeyword(keyword)
	switch {
	case commercialMarkers.MatchString(k):
		return model.IntentCommercial
	case informationalMarkers.MatchString(k):
		return model.IntentInformational
	case investigationMarkers.MatchString(k):
		return model.IntentInvestigation
	default:
		return model.IntentInformational
	}
}
