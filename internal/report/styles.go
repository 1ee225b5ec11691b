package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rankflow/internal/cli"
	"github.com/Veraticus/rankflow/internal/scoring"
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box       lipgloss.Style
	KPI       lipgloss.Style
	Header    lipgloss.Style
	Highlight lipgloss.Style
	BarFill   lipgloss.Style
	BarEmpty  lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.KPI = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.Header = cli.TableHeaderStyle

	// Focal domain row in the competitor table
	s.Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.InfoColor)

	s.BarFill = lipgloss.NewStyle().
		Foreground(cli.SuccessColor)

	s.BarEmpty = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#333333"))

	return s
}

// WithWidth returns a new Styles instance adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s

	if width > 0 && width < 100 {
		boxCopy := s.Box
		newStyles.Box = boxCopy.Width(width - 4)
	}

	return &newStyles
}

// ForDelta returns the style for a position delta; positive deltas are
// improvements.
func (s *Styles) ForDelta(delta int) lipgloss.Style {
	switch {
	case delta > 0:
		return s.Success
	case delta < 0:
		return s.Error
	default:
		return s.Subtle
	}
}

// ForPosition returns the style for a ranking position.
func (s *Styles) ForPosition(position int) lipgloss.Style {
	switch {
	case position <= 0 || position > 20:
		return s.Subtle
	case position <= 3:
		return s.Success
	case position <= 10:
		return s.Info
	default:
		return s.Warning
	}
}

// ForConcentration returns the style for a market concentration level.
func (s *Styles) ForConcentration(level scoring.ConcentrationLevel) lipgloss.Style {
	switch level {
	case scoring.ConcentrationHigh:
		return s.Error
	case scoring.ConcentrationModerate:
		return s.Warning
	default:
		return s.Success
	}
}

// RenderBar creates a bar filled to the given fraction.
func (s *Styles) RenderBar(fraction float64, width int) string {
	if width <= 0 {
		width = 30
	}

	filled := int(float64(width) * fraction)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return s.BarFill.Render(repeatChar("█", filled)) + s.BarEmpty.Render(repeatChar("░", width-filled))
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string) string {
	if title != "" {
		// lipgloss v1.1.0 has no border titles
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return s.Box.Render(titleStyled + "\n" + content)
	}
	return s.Box.Render(content)
}

// repeatChar repeats a character n times.
func repeatChar(char string, n int) string {
	if n <= 0 {
		return ""
	}
	result := make([]byte, 0, len(char)*n)
	for i := 0; i < n; i++ {
		result = append(result, char...)
	}
	return string(result)
}
