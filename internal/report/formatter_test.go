package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rankflow/internal/analytics"
	"github.com/Veraticus/rankflow/internal/model"
)

func TestCLIFormatter_Format(t *testing.T) {
	formatter := NewCLIFormatter()
	r := buildSample(t)

	tests := []struct {
		name        string
		view        View
		contains    []string
		notContains []string
	}{
		{
			name:        "summary",
			view:        ViewSummary,
			contains:    []string{"Ranking Report: acme.com", "2024-05 (may.csv)", "Executive Summary", "Share of Voice", "53.8%"},
			notContains: []string{"Competitor Benchmark"},
		},
		{
			name:     "competitors",
			view:     ViewCompetitors,
			contains: []string{"Competitor Benchmark", "acme.com", "rival.io", "highly concentrated"},
		},
		{
			name:     "distribution",
			view:     ViewDistribution,
			contains: []string{"Ranking Distribution", "Top 3", "20+", "(33%)"},
		},
		{
			name:     "opportunities",
			view:     ViewOpportunities,
			contains: []string{"buy running shoes", "Quick Win", "Striking Distance", "726.00", "Score"},
		},
		{
			name:     "groups",
			view:     ViewGroups,
			contains: []string{"Keyword Groups", "ungrouped", "money", "guides"},
		},
		{
			name:     "urls",
			view:     ViewURLs,
			contains: []string{"Landing Pages", "https://acme.com/trail"},
		},
		{
			name:     "evolution",
			view:     ViewEvolution,
			contains: []string{"Keyword Evolution", "Trend: 2024-05", "acme trail shoes ®", "reinforce (money keyword)"},
		},
		{
			name:     "all",
			view:     ViewAll,
			contains: []string{"Executive Summary", "Competitor Benchmark", "Ranking Distribution", "Opportunities", "Keyword Groups", "Landing Pages", "Keyword Evolution"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatter.Format(r, tt.view)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCLIFormatter_EmptyReport(t *testing.T) {
	formatter := NewCLIFormatter()

	assert.Contains(t, formatter.Format(nil, ViewAll), "No report available")

	r := &Report{
		GeneratedAt:  time.Now(),
		Import:       model.Import{MonthLabel: "2024-05", Filename: "empty.csv"},
		Domain:       "acme.com",
		Summary:      &analytics.ExecutiveSummary{},
		Competitors:  &analytics.CompetitorBenchmark{},
		Distribution: &analytics.Distribution{},
		Evolution:    &analytics.KeywordEvolution{},
	}
	out := formatter.Format(r, ViewAll)
	assert.Contains(t, out, "No ranking data for this import")
	assert.Contains(t, out, "No keywords between positions 4 and 20")
	assert.Contains(t, out, "No ranking URLs")
}

func TestCLIFormatter_TruncatesLongTables(t *testing.T) {
	formatter := NewCLIFormatter()

	opps := make([]analytics.Opportunity, maxOpportunityRows+4)
	for i := range opps {
		opps[i] = analytics.Opportunity{Keyword: "kw", Position: 5, Type: model.OpportunityQuickWin}
	}

	out := formatter.formatOpportunities(opps)
	assert.Contains(t, out, "... and 4 more opportunities")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc  ", fit("abc", 5))
	assert.Equal(t, "abcdefg...", fit("abcdefghijklmnop", 10))
	assert.Equal(t, 10, len([]rune(fit("ñandú corredor veloz", 10))))
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"unranked position", formatPosition(0), "-"},
		{"ranked position", formatPosition(7), "7"},
		{"improvement", formatDelta(3), "+3"},
		{"drop", formatDelta(-2), "-2"},
		{"unchanged", formatDelta(0), "="},
		{"trend with gaps", formatTrend([]int{0, 12, 8}), "-→12→8"},
		{"zero value hidden", formatValue(0), ""},
		{"value", formatValue(12.5), "12.50"},
		{"no average", formatAverage(0), "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTableAlignment(t *testing.T) {
	formatter := NewCLIFormatter()
	tbl := formatter.newTable(column{"A", 4}, column{"B", 3})
	tbl.row(formatter.styles.Normal, "x", "y")

	lines := strings.Split(tbl.String(), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "x    y", strings.TrimRight(lines[2], " "))
}
