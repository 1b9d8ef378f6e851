package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Columns in pdftotext -layout output are separated by runs of whitespace.
var reColumnGap = regexp.MustCompile(`\s{2,}`)

// tablesFromLayout recovers tabular cost/schedule data from pdftotext -layout
// output. Heuristic: three or more consecutive lines that each split into two
// or more columns form a table. Good enough for SOW cost breakdowns and
// milestone grids; prose never splits this way.
func tablesFromLayout(text string) []Table {
	var tables []Table
	var rows [][]string
	page := 1

	flush := func() {
		if len(rows) >= 3 {
			tables = append(tables, Table{Page: page, Num: len(tables) + 1, Rows: rows})
		}
		rows = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "\f") {
			flush()
			page += strings.Count(line, "\f")
			line = strings.ReplaceAll(line, "\f", "")
		}
		cells := splitColumns(line)
		if len(cells) >= 2 {
			rows = append(rows, cells)
			continue
		}
		flush()
	}
	flush()
	return tables
}

func splitColumns(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	parts := reColumnGap.Split(trimmed, -1)
	cells := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// FormatTable renders one table as readable text, cells joined with " | ".
func FormatTable(t Table) string {
	var b strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(row, " | "))
	}
	return b.String()
}

// appendTableDigest folds extracted tables into the text stream as labelled
// blocks so the analysis prompt sees them alongside the prose.
func appendTableDigest(text string, tables []Table) string {
	if len(tables) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	for _, t := range tables {
		b.WriteString("\n\n")
		if t.Page > 0 {
			b.WriteString(fmt.Sprintf("[TABLE %d on Page %d]\n", t.Num, t.Page))
		} else {
			b.WriteString(fmt.Sprintf("[TABLE %d]\n", t.Num))
		}
		b.WriteString(FormatTable(t))
	}
	return b.String()
}

func splitWords(s string) []string {
	return strings.Fields(s)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
