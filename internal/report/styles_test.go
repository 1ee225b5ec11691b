package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rankflow/internal/scoring"
)

func TestRepeatChar(t *testing.T) {
	tests := []struct {
		name     string
		char     string
		expected string
		n        int
	}{
		{name: "zero repetitions", char: "x", n: 0, expected: ""},
		{name: "negative repetitions", char: "x", n: -5, expected: ""},
		{name: "multiple repetitions", char: "█", n: 5, expected: "█████"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repeatChar(tt.char, tt.n))
		})
	}
}

func TestStyles_ForDelta(t *testing.T) {
	styles := NewStyles()

	assert.Equal(t, styles.Success.Render("x"), styles.ForDelta(2).Render("x"))
	assert.Equal(t, styles.Error.Render("x"), styles.ForDelta(-1).Render("x"))
	assert.Equal(t, styles.Subtle.Render("x"), styles.ForDelta(0).Render("x"))
}

func TestStyles_ForConcentration(t *testing.T) {
	styles := NewStyles()

	assert.Equal(t, styles.Error.Render("x"), styles.ForConcentration(scoring.ConcentrationHigh).Render("x"))
	assert.Equal(t, styles.Warning.Render("x"), styles.ForConcentration(scoring.ConcentrationModerate).Render("x"))
	assert.Equal(t, styles.Success.Render("x"), styles.ForConcentration(scoring.ConcentrationCompetitive).Render("x"))
}

func TestStyles_RenderBar(t *testing.T) {
	styles := NewStyles()

	tests := []struct {
		name     string
		fraction float64
		width    int
		filled   int
	}{
		{name: "half", fraction: 0.5, width: 10, filled: 5},
		{name: "overflow clamps", fraction: 1.5, width: 10, filled: 10},
		{name: "negative clamps", fraction: -1, width: 10, filled: 0},
		{name: "default width", fraction: 1, width: 0, filled: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := styles.RenderBar(tt.fraction, tt.width)
			assert.Contains(t, bar, repeatChar("█", tt.filled))
			assert.NotContains(t, bar, repeatChar("█", tt.filled+1))
		})
	}
}

func TestStyles_WithWidth(t *testing.T) {
	styles := NewStyles()

	narrow := styles.WithWidth(60)
	assert.Equal(t, 56, narrow.Box.GetWidth())

	wide := styles.WithWidth(120)
	assert.Equal(t, styles.Box.GetWidth(), wide.Box.GetWidth())
}
