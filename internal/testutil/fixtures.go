package testutil

import (
	"bytes"
	"encoding/csv"
)

// Locale selects the header vocabulary of a generated export.
type Locale int

// Supported export locales.
const (
	English Locale = iota
	Spanish
)

// Ranking holds the raw per-domain cells of an export row.
type Ranking struct {
	Visibility string
	Position   string
	URL        string
}

// Row holds the raw cells of one export row.
type Row struct {
	Rankings   map[string]Ranking
	Keyword    string
	Group      string
	Difficulty string
	Volume     string
	CTR        string
	CPC        string
}

type headerSet struct {
	keyword, group, difficulty, volume, ctr, cpc string
	visibility, position, url                    string
}

var headers = map[Locale]headerSet{
	English: {
		keyword: "Keyword", group: "Keyword Group", difficulty: "Keyword Difficulty",
		volume: "Search Volume", ctr: "CTR", cpc: "Avg. CPC",
		visibility: "Visibility ", position: "Position ", url: "Found URL ",
	},
	Spanish: {
		keyword: "Palabra clave", group: "Grupo Palabra Clave", difficulty: "Google Dificultad Palabra Clave",
		volume: "# de búsquedas", ctr: "CTR", cpc: "CPC prom.",
		visibility: "Visibilidad ", position: "Posición en Google ", url: "Google URL encontrada ",
	},
}

// ExportCSV renders rows as a rank-tracking export with one column group per domain.
func ExportCSV(locale Locale, domains []string, rows ...Row) string {
	h := headers[locale]

	header := []string{h.keyword, h.group, h.difficulty, h.volume, h.ctr, h.cpc}
	for _, d := range domains {
		header = append(header, h.visibility+d, h.position+d, h.url+d)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, r := range rows {
		record := []string{r.Keyword, r.Group, r.Difficulty, r.Volume, r.CTR, r.CPC}
		for _, d := range domains {
			rk := r.Rankings[d]
			record = append(record, rk.Visibility, rk.Position, rk.URL)
		}
		_ = w.Write(record)
	}
	w.Flush()

	return buf.String()
}

// SampleExport is a small English export with two tracked domains.
func SampleExport() string {
	return ExportCSV(English, []string{"acme.com", "rival.io"},
		Row{
			Keyword: "buy running shoes", Group: "money", Difficulty: "45", Volume: "12.100", CTR: "3,5%", CPC: "$1.20",
			Rankings: map[string]Ranking{
				"acme.com": {Visibility: "12,5%", Position: "5", URL: "https://acme.com/shoes"},
				"rival.io": {Visibility: "40%", Position: "1", URL: "https://rival.io/shoes"},
			},
		},
		Row{
			Keyword: "how to lace shoes", Group: "guides", Difficulty: "20", Volume: "880", CTR: "N/D", CPC: "0,40 €",
			Rankings: map[string]Ranking{
				"acme.com": {Visibility: "2%", Position: "14", URL: "https://acme.com/lacing"},
				"rival.io": {Visibility: "-", Position: "Not in top 20"},
			},
		},
		Row{
			Keyword: "acme trail shoes", Group: "", Difficulty: "-", Volume: "1,000", CTR: "", CPC: "",
			Rankings: map[string]Ranking{
				"acme.com": {Visibility: "32%", Position: "1", URL: "https://acme.com/trail"},
				"rival.io": {Visibility: "0%", Position: "35"},
			},
		},
	)
}
