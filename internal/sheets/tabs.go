package sheets

import (
	"strings"

	"github.com/Veraticus/rankflow/internal/report"
)

// Tab is one worksheet of the exported report. The first row is the header.
type Tab struct {
	Title string
	Rows  [][]any
}

// Tab titles, in spreadsheet order.
const (
	TabSummary       = "Summary"
	TabCompetitors   = "Competitors"
	TabDistribution  = "Distribution"
	TabOpportunities = "Opportunities"
	TabGroups        = "Groups"
	TabURLs          = "URLs"
	TabEvolution     = "Evolution"
)

// buildTabs lays out every view of a report as worksheet rows.
func buildTabs(r *report.Report) []Tab {
	return []Tab{
		summaryTab(r),
		competitorsTab(r),
		distributionTab(r),
		opportunitiesTab(r),
		groupsTab(r),
		urlsTab(r),
		evolutionTab(r),
	}
}

func summaryTab(r *report.Report) Tab {
	rows := [][]any{
		{"Metric", "Value"},
		{"Domain", r.Domain},
		{"Month", r.Import.MonthLabel},
		{"Source file", r.Import.Filename},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
	}

	if s := r.Summary; s != nil {
		rows = append(rows,
			[]any{"Keywords", s.Keywords},
			[]any{"Total visibility", s.TotalVisibility},
			[]any{"Share of voice %", s.ShareOfVoice},
			[]any{"Average position", s.AvgPosition},
			[]any{"Top 3", s.Top3},
			[]any{"Top 10", s.Top10},
			[]any{"Top 20", s.Top20},
			[]any{"Out of top 20", s.OutOfTop20},
			[]any{"Striking distance", s.StrikingDistance},
			[]any{"Estimated traffic", s.EstimatedTraffic},
			[]any{"Estimated value", s.EstimatedValue},
		)
	}

	return Tab{Title: TabSummary, Rows: rows}
}

func competitorsTab(r *report.Report) Tab {
	rows := [][]any{{"Domain", "Visibility", "Share of voice %", "Avg position", "Keywords", "Top 3", "Top 10", "Top 20", "Out of top 20", "Striking distance"}}
	if b := r.Competitors; b != nil {
		for _, d := range b.Domains {
			rows = append(rows, []any{
				d.Domain, d.TotalVisibility, d.ShareOfVoice, d.AvgPosition, d.Keywords,
				d.Top3, d.Top10, d.Top20, d.OutOfTop20, d.StrikingDistance,
			})
		}
		rows = append(rows, []any{}, []any{"HHI", b.HHI, string(b.Concentration)})
	}
	return Tab{Title: TabCompetitors, Rows: rows}
}

func distributionTab(r *report.Report) Tab {
	rows := [][]any{{"Bucket", "Keywords"}}
	if d := r.Distribution; d != nil {
		rows = append(rows,
			[]any{"Top 3", d.Top3},
			[]any{"4-10", d.Top4To10},
			[]any{"11-20", d.Top11To20},
			[]any{"20+", d.Beyond20},
		)
	}
	return Tab{Title: TabDistribution, Rows: rows}
}

func opportunitiesTab(r *report.Report) Tab {
	rows := [][]any{{
		"Keyword", "Group", "Position", "Type", "Volume", "Difficulty",
		"Uplift clicks", "Uplift value", "Score", "Intent", "Reason", "URL",
	}}
	for _, o := range r.Opportunities {
		rows = append(rows, []any{
			o.Keyword, o.Group, o.Position, string(o.Type), o.Volume, o.Difficulty,
			o.UpliftClicks, o.UpliftValue, o.Score, string(o.Intent), o.Reason, o.URL,
		})
	}
	return Tab{Title: TabOpportunities, Rows: rows}
}

func groupsTab(r *report.Report) Tab {
	rows := [][]any{{"Group", "Keywords", "Visibility", "Avg position", "Top 10"}}
	for _, g := range r.Groups {
		rows = append(rows, []any{g.Group, g.Keywords, g.TotalVisibility, g.AvgPosition, g.Top10})
	}
	return Tab{Title: TabGroups, Rows: rows}
}

func urlsTab(r *report.Report) Tab {
	rows := [][]any{{"URL", "Keywords", "Visibility", "Top 10"}}
	for _, u := range r.URLs {
		rows = append(rows, []any{u.URL, u.Keywords, u.TotalVisibility, u.Top10})
	}
	return Tab{Title: TabURLs, Rows: rows}
}

func evolutionTab(r *report.Report) Tab {
	header := []any{"Keyword", "Group", "Position", "Previous", "Delta"}
	var months []string
	if r.Evolution != nil {
		months = r.Evolution.Months
	}
	for _, m := range months {
		header = append(header, m)
	}
	header = append(header, "Value", "Intent", "Action", "Branded", "URL")

	rows := [][]any{header}
	if r.Evolution == nil {
		return Tab{Title: TabEvolution, Rows: rows}
	}

	for _, e := range r.Evolution.Rows {
		row := []any{e.Keyword, e.Group, blankZero(e.Position), blankZero(e.PreviousPosition), e.Delta}
		for _, p := range e.Trend {
			row = append(row, blankZero(p))
		}
		branded := ""
		if e.Branded {
			branded = "yes"
		}
		row = append(row, e.Value, string(e.Intent), string(e.Action), branded, e.URL)
		rows = append(rows, row)
	}

	return Tab{Title: TabEvolution, Rows: rows}
}

// blankZero leaves unranked positions empty instead of writing 0.
func blankZero(pos int) any {
	if pos <= 0 {
		return ""
	}
	return pos
}

// a1Range quotes a tab title for A1 notation.
func a1Range(title, cell string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cell
}

// batches splits rows into consecutive chunks of at most size rows.
func batches(rows [][]any, size int) [][][]any {
	if size <= 0 {
		size = len(rows)
	}
	var out [][][]any
	for i := 0; i < len(rows); i += size {
		out = append(out, rows[i:min(i+size, len(rows))])
	}
	return out
}
