package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rankflow/internal/analytics"
)

// Row limits for the long tables.
const (
	maxOpportunityRows = 15
	maxURLRows         = 15
	maxEvolutionRows   = 20
)

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// Format renders one view of the report, or every view for ViewAll.
func (f *CLIFormatter) Format(r *Report, view View) string {
	if r == nil {
		return f.styles.Error.Render("No report available")
	}

	views := []View{view}
	if view == ViewAll {
		views = Views
	}

	sections := []string{f.formatHeader(r)}
	for _, v := range views {
		sections = append(sections, f.formatView(r, v))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatView(r *Report, v View) string {
	switch v {
	case ViewSummary:
		return f.formatSummary(r.Summary)
	case ViewCompetitors:
		return f.formatCompetitors(r.Competitors, r.Domain)
	case ViewDistribution:
		return f.formatDistribution(r.Distribution)
	case ViewOpportunities:
		return f.formatOpportunities(r.Opportunities)
	case ViewGroups:
		return f.formatGroups(r.Groups)
	case ViewURLs:
		return f.formatURLs(r.URLs)
	case ViewEvolution:
		return f.formatEvolution(r.Evolution)
	default:
		return f.styles.Error.Render(fmt.Sprintf("Unknown view %q", v))
	}
}

// formatHeader creates the report header section.
func (f *CLIFormatter) formatHeader(r *Report) string {
	title := f.styles.Title.Render("📈 Ranking Report: " + r.Domain)

	source := fmt.Sprintf("Import: %s (%s)", r.Import.MonthLabel, r.Import.Filename)
	generated := fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339))

	return fmt.Sprintf("%s\n%s\n%s", title, f.styles.Subtitle.Render(source), f.styles.Subtle.Render(generated))
}

func (f *CLIFormatter) formatSummary(s *analytics.ExecutiveSummary) string {
	if s == nil || s.Keywords == 0 {
		return f.empty("Executive Summary")
	}

	stats := []struct {
		label string
		value string
	}{
		{"Keywords", strconv.Itoa(s.Keywords)},
		{"Visibility", fmt.Sprintf("%.1f", s.TotalVisibility)},
		{"Share of Voice", fmt.Sprintf("%.1f%%", s.ShareOfVoice)},
		{"Avg Position", formatAverage(s.AvgPosition)},
		{"Top 3", strconv.Itoa(s.Top3)},
		{"Top 10", strconv.Itoa(s.Top10)},
		{"Top 20", strconv.Itoa(s.Top20)},
		{"Out of Top 20", strconv.Itoa(s.OutOfTop20)},
		{"Striking Distance", strconv.Itoa(s.StrikingDistance)},
		{"Est. Traffic", fmt.Sprintf("%.0f", s.EstimatedTraffic)},
		{"Est. Value", fmt.Sprintf("%.2f", s.EstimatedValue)},
	}

	lines := make([]string, 0, len(stats))
	for _, stat := range stats {
		label := f.styles.Subtle.Render(fmt.Sprintf("%-18s", stat.label))
		lines = append(lines, label+f.styles.KPI.Render(stat.value))
	}

	return f.styles.RenderBox(strings.Join(lines, "\n"), "Executive Summary")
}

func (f *CLIFormatter) formatCompetitors(b *analytics.CompetitorBenchmark, focal string) string {
	title := f.styles.Subtitle.Render("Competitor Benchmark:")
	if b == nil || len(b.Domains) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No ranking data")
	}

	t := f.newTable(
		column{"Domain", 24}, column{"Visibility", 11}, column{"SoV", 8}, column{"Avg Pos", 8},
		column{"Top 3", 6}, column{"Top 10", 7}, column{"Top 20", 7}, column{"20+", 5},
	)
	for _, d := range b.Domains {
		style := f.styles.Normal
		if d.Domain == focal {
			style = f.styles.Highlight
		}
		t.row(style,
			d.Domain,
			fmt.Sprintf("%.1f", d.TotalVisibility),
			fmt.Sprintf("%.1f%%", d.ShareOfVoice),
			formatAverage(d.AvgPosition),
			strconv.Itoa(d.Top3),
			strconv.Itoa(d.Top10),
			strconv.Itoa(d.Top20),
			strconv.Itoa(d.OutOfTop20),
		)
	}

	hhi := fmt.Sprintf("HHI %.0f (%s)", b.HHI, b.Concentration)
	return title + "\n" + t.String() + "\n" + f.styles.ForConcentration(b.Concentration).Render(hhi)
}

func (f *CLIFormatter) formatDistribution(d *analytics.Distribution) string {
	title := f.styles.Subtitle.Render("Ranking Distribution:")
	if d == nil || d.Total() == 0 {
		return title + "\n" + f.styles.Subtle.Render("No ranking data")
	}

	buckets := []struct {
		label string
		count int
	}{
		{"Top 3", d.Top3},
		{"4-10", d.Top4To10},
		{"11-20", d.Top11To20},
		{"20+", d.Beyond20},
	}

	total := float64(d.Total())
	lines := make([]string, 0, len(buckets))
	for _, b := range buckets {
		share := float64(b.count) / total
		lines = append(lines, fmt.Sprintf("%-6s %s %4d (%.0f%%)", b.label, f.styles.RenderBar(share, 30), b.count, share*100))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatOpportunities(opps []analytics.Opportunity) string {
	title := f.styles.Subtitle.Render("🎯 Opportunities:")
	if len(opps) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No keywords between positions 4 and 20")
	}

	t := f.newTable(
		column{"Keyword", 32}, column{"Pos", 4}, column{"Type", 18}, column{"Volume", 8},
		column{"KD", 4}, column{"Uplift", 10}, column{"Score", 6}, column{"Intent", 13},
	)
	for _, o := range limit(opps, maxOpportunityRows) {
		t.row(f.styles.ForPosition(o.Position),
			o.Keyword,
			strconv.Itoa(o.Position),
			string(o.Type),
			strconv.FormatInt(o.Volume, 10),
			strconv.FormatInt(o.Difficulty, 10),
			fmt.Sprintf("%.2f", o.UpliftValue),
			fmt.Sprintf("%.1f", o.Score),
			string(o.Intent),
		)
	}

	return title + "\n" + t.String() + f.more(len(opps), maxOpportunityRows, "opportunities")
}

func (f *CLIFormatter) formatGroups(groups []analytics.GroupStats) string {
	title := f.styles.Subtitle.Render("Keyword Groups:")
	if len(groups) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No keywords")
	}

	t := f.newTable(column{"Group", 28}, column{"Keywords", 9}, column{"Visibility", 11}, column{"Avg Pos", 8}, column{"Top 10", 7})
	for _, g := range groups {
		t.row(f.styles.Normal,
			g.Group,
			strconv.Itoa(g.Keywords),
			fmt.Sprintf("%.1f", g.TotalVisibility),
			formatAverage(g.AvgPosition),
			strconv.Itoa(g.Top10),
		)
	}

	return title + "\n" + t.String()
}

func (f *CLIFormatter) formatURLs(urls []analytics.URLStats) string {
	title := f.styles.Subtitle.Render("Landing Pages:")
	if len(urls) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No ranking URLs")
	}

	t := f.newTable(column{"URL", 48}, column{"Keywords", 9}, column{"Visibility", 11}, column{"Top 10", 7})
	for _, u := range limit(urls, maxURLRows) {
		t.row(f.styles.Normal,
			u.URL,
			strconv.Itoa(u.Keywords),
			fmt.Sprintf("%.1f", u.TotalVisibility),
			strconv.Itoa(u.Top10),
		)
	}

	return title + "\n" + t.String() + f.more(len(urls), maxURLRows, "URLs")
}

func (f *CLIFormatter) formatEvolution(e *analytics.KeywordEvolution) string {
	title := f.styles.Subtitle.Render("Keyword Evolution:")
	if e == nil || len(e.Rows) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No keywords")
	}

	months := f.styles.Subtle.Render("Trend: " + strings.Join(e.Months, " → "))
	t := f.newTable(
		column{"Keyword", 32}, column{"Pos", 4}, column{"Δ", 4}, column{"Trend", 14},
		column{"Value", 10}, column{"Action", 28},
	)
	for _, row := range limit(e.Rows, maxEvolutionRows) {
		keyword := row.Keyword
		if row.Branded {
			keyword += " ®"
		}
		t.row(f.styles.ForDelta(row.Delta),
			keyword,
			formatPosition(row.Position),
			formatDelta(row.Delta),
			formatTrend(row.Trend),
			formatValue(row.Value),
			string(row.Action),
		)
	}

	return title + "\n" + months + "\n" + t.String() + f.more(len(e.Rows), maxEvolutionRows, "keywords")
}

func (f *CLIFormatter) empty(section string) string {
	return f.styles.RenderBox(f.styles.Subtle.Render("No ranking data for this import"), section)
}

func (f *CLIFormatter) more(total, shown int, noun string) string {
	if total <= shown {
		return ""
	}
	return "\n" + f.styles.Subtle.Render(fmt.Sprintf("... and %d more %s", total-shown, noun))
}

type column struct {
	title string
	width int
}

// table renders fixed-width rows. Cells are padded before styling so
// escape sequences do not break alignment.
type table struct {
	styles  *Styles
	columns []column
	lines   []string
}

func (f *CLIFormatter) newTable(columns ...column) *table {
	t := &table{styles: f.styles, columns: columns}

	titles := make([]string, len(columns))
	width := 0
	for i, c := range columns {
		titles[i] = c.title
		width += c.width + 1
	}
	header := t.join(titles)
	t.lines = append(t.lines, f.styles.Header.Render(header), f.styles.Subtle.Render(strings.Repeat("─", width-1)))
	return t
}

func (t *table) row(style lipgloss.Style, cells ...string) {
	t.lines = append(t.lines, style.Render(t.join(cells)))
}

func (t *table) join(cells []string) string {
	padded := make([]string, len(t.columns))
	for i, c := range t.columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = fit(cell, c.width)
	}
	return strings.Join(padded, " ")
}

func (t *table) String() string {
	return strings.Join(t.lines, "\n")
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int) string {
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "..."
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func formatAverage(avg float64) string {
	if avg == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", avg)
}

func formatPosition(pos int) string {
	if pos <= 0 {
		return "-"
	}
	return strconv.Itoa(pos)
}

func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "="
}

func formatTrend(trend []int) string {
	parts := make([]string, len(trend))
	for i, p := range trend {
		parts[i] = formatPosition(p)
	}
	return strings.Join(parts, "→")
}

func formatValue(v float64) string {
	if v <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
