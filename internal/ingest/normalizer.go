// Package ingest turns rank-tracking CSV exports into canonical records and
// persists them as one import.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/parse"
)

// ErrNoKeywordColumn is returned when the header row has no keyword column.
var ErrNoKeywordColumn = errors.New("header has no keyword column")

const utf8BOM = "\xef\xbb\xbf"

// Result is the normalized content of one export.
type Result struct {
	Records []model.Record
	Domains []string
	// Skipped counts rows without keyword text.
	Skipped int
	// Recovered counts rows re-read after an unclosed quote ran them together.
	Recovered int
}

type column int

const (
	colKeyword column = iota
	colGroup
	colDifficulty
	colVolume
	colImpressions
	colCTR
	colCompetition
	colCPCAvg
	colCPCMin
	colCPCMax
	colTrend
	numColumns
)

// baseColumns maps lower-cased source headers, English and Spanish exports, to columns.
var baseColumns = map[string]column{
	"keyword":                         colKeyword,
	"palabra clave":                   colKeyword,
	"keyword group":                   colGroup,
	"grupo palabra clave":             colGroup,
	"keyword difficulty":              colDifficulty,
	"google dificultad palabra clave": colDifficulty,
	"search volume":                   colVolume,
	"# de búsquedas":                  colVolume,
	"impressions":                     colImpressions,
	"impresiones":                     colImpressions,
	"ctr":                             colCTR,
	"competition":                     colCompetition,
	"competencia":                     colCompetition,
	"avg. cpc":                        colCPCAvg,
	"cpc prom.":                       colCPCAvg,
	"min. cpc":                        colCPCMin,
	"cpc mín.":                        colCPCMin,
	"max. cpc":                        colCPCMax,
	"cpc máx.":                        colCPCMax,
	"3-month trend":                   colTrend,
	"cambio de 3 meses (tendencia)":   colTrend,
}

// Per-domain header prefixes. A domain is introduced by a visibility header.
var (
	visibilityPrefixes = []string{"Visibility ", "Visibilidad "}
	positionPrefixes   = []string{"Position ", "Posición en Google "}
	urlPrefixes        = []string{"Found URL ", "Google URL encontrada "}
)

// domainColumns holds the column indexes of one domain, -1 when absent.
type domainColumns struct {
	domain     string
	visibility int
	position   int
	url        int
}

// layout is the column map resolved once from the header row.
type layout struct {
	domains []domainColumns
	base    [numColumns]int
	width   int
}

// Normalize reads a CSV export and returns its canonical records in input
// order together with the discovered domains. Malformed cells degrade to
// missing values. Only an unreadable table (*common.ParseError) or a table
// without data rows (*common.EmptyInputError) fail.
func Normalize(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &common.ParseError{Err: fmt.Errorf("failed to read input: %w", err)}
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &common.EmptyInputError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &common.ParseError{Err: err, Line: csvErrorLine(err)}
	}

	lay := resolveLayout(header)
	if lay.base[colKeyword] < 0 {
		return nil, &common.ParseError{Err: ErrNoKeywordColumn, Line: 1}
	}

	result := &Result{
		Domains: make([]string, 0, len(lay.domains)),
	}
	for _, dc := range lay.domains {
		result.Domains = append(result.Domains, dc.domain)
	}

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			if len(result.Records) == 0 && result.Skipped == 0 {
				return nil, &common.ParseError{Err: readErr, Line: csvErrorLine(readErr)}
			}
			slog.Warn("Stopped reading malformed export",
				"rows_kept", len(result.Records),
				"error", readErr)
			break
		}

		rows := [][]string{row}
		if lay.swallowed(row) {
			line, _ := reader.FieldPos(0)
			rows = splitSwallowed(row, reader.Comma)
			result.Recovered += len(rows)
			slog.Warn("Recovered rows merged by an unclosed quote",
				"line", line,
				"rows", len(rows))
		}

		for _, row := range rows {
			record, ok := lay.record(row)
			if !ok {
				result.Skipped++
				continue
			}
			result.Records = append(result.Records, record)
		}
	}

	if len(result.Records) == 0 {
		reason := ""
		if result.Skipped > 0 {
			reason = fmt.Sprintf("%d rows without keyword text", result.Skipped)
		}
		return nil, &common.EmptyInputError{Reason: reason}
	}

	return result, nil
}

// resolveLayout scans the header once for base columns and domain groups.
func resolveLayout(header []string) layout {
	lay := layout{width: len(header)}
	for i := range lay.base {
		lay.base[i] = -1
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
		if col, ok := baseColumns[strings.ToLower(h)]; ok && lay.base[col] < 0 {
			lay.base[col] = i
		}
	}

	seen := make(map[string]bool)
	for _, h := range header {
		domain, ok := cutAnyPrefix(strings.TrimSpace(h), visibilityPrefixes)
		if !ok || domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		lay.domains = append(lay.domains, domainColumns{
			domain:     domain,
			visibility: lookup(index, visibilityPrefixes, domain),
			position:   lookup(index, positionPrefixes, domain),
			url:        lookup(index, urlPrefixes, domain),
		})
	}

	return lay
}

// record builds the canonical record of a data row. Rows without keyword
// text are not usable.
func (l layout) record(row []string) (model.Record, bool) {
	keyword := strings.TrimSpace(cell(row, l.base[colKeyword]))
	if parse.IsMissing(keyword) {
		return model.Record{}, false
	}

	rec := model.Record{
		Keyword:     keyword,
		Difficulty:  parse.Int(cell(row, l.base[colDifficulty])),
		Volume:      parse.Int(cell(row, l.base[colVolume])),
		Impressions: parse.Int(cell(row, l.base[colImpressions])),
		CTR:         parse.Percent(cell(row, l.base[colCTR])),
		Competition: parse.Text(cell(row, l.base[colCompetition])),
		CPCAvg:      parse.Currency(cell(row, l.base[colCPCAvg])),
		CPCMin:      parse.Currency(cell(row, l.base[colCPCMin])),
		CPCMax:      parse.Currency(cell(row, l.base[colCPCMax])),
		Trend3M:     parse.Text(cell(row, l.base[colTrend])),
		Rankings:    make(map[string]model.RankingCell, len(l.domains)),
	}
	if group := parse.Text(cell(row, l.base[colGroup])); group != nil {
		rec.Group = *group
	}

	for _, dc := range l.domains {
		pos, out := parse.Position(cell(row, dc.position))
		rec.Rankings[dc.domain] = model.RankingCell{
			Visibility: clampVisibility(parse.Percent(cell(row, dc.visibility)), keyword, dc.domain),
			Position:   pos,
			OutOfTop20: out,
			URL:        parse.Text(cell(row, dc.url)),
		}
	}

	return rec, true
}

// swallowed reports whether a lazily quoted field ran across line breaks and
// took the following rows with it.
func (l layout) swallowed(row []string) bool {
	if strings.ContainsAny(cell(row, l.base[colKeyword]), "\r\n") {
		return true
	}
	return len(row) > 0 && len(row) < l.width && strings.ContainsAny(row[len(row)-1], "\r\n")
}

// splitSwallowed re-reads a merged row one physical line at a time. The
// unclosed quote has already been consumed, so each line parses on its own.
func splitSwallowed(row []string, comma rune) [][]string {
	text := strings.Join(row, string(comma))
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		reader := csv.NewReader(strings.NewReader(line))
		reader.Comma = comma
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		fields, err := reader.Read()
		if err != nil {
			continue
		}
		rows = append(rows, fields)
	}
	return rows
}

// clampVisibility bounds a visibility cell to [0, 100].
func clampVisibility(v *float64, keyword, domain string) *float64 {
	if v == nil || (*v >= 0 && *v <= 100) {
		return v
	}
	clamped := min(max(*v, 0), 100)
	slog.Warn("Clamped out-of-range visibility",
		"keyword", keyword,
		"domain", domain,
		"value", *v,
		"clamped", clamped)
	return &clamped
}

// detectDelimiter picks ';' when the header line has more semicolons than commas.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func cutAnyPrefix(s string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func lookup(index map[string]int, prefixes []string, domain string) int {
	for _, p := range prefixes {
		if i, ok := index[p+domain]; ok {
			return i
		}
	}
	return -1
}

func csvErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
