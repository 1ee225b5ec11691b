package scoring

import "strings"

// ConcentrationLevel classifies a Herfindahl-Hirschman index.
type ConcentrationLevel string

// Concentration levels.
const (
	ConcentrationHigh        ConcentrationLevel = "highly concentrated"
	ConcentrationModerate    ConcentrationLevel = "moderately concentrated"
	ConcentrationCompetitive ConcentrationLevel = "competitive"
)

// Concentration returns the HHI of a set of share-of-voice percentages
// and its level.
func Concentration(shares []float64) (float64, ConcentrationLevel) {
	var hhi float64
	for _, s := range shares {
		hhi += s * s
	}

	switch {
	case hhi > 2500:
		return hhi, ConcentrationHigh
	case hhi > 1500:
		return hhi, ConcentrationModerate
	default:
		return hhi, ConcentrationCompetitive
	}
}

// IsBranded reports whether a keyword mentions the brand of any domain,
// the brand being the domain label before the first dot.
func IsBranded(keyword string, domains ...string) bool {
	k := strings.ToLower(keyword)
	for _, d := range domains {
		brand := strings.ToLower(strings.TrimPrefix(d, "www."))
		if i := strings.IndexByte(brand, '.'); i >= 0 {
			brand = brand[:i]
		}
		if brand != "" && strings.Contains(k, brand) {
			return true
		}
	}
	return false
}
