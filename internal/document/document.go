package document

import (
	"strings"
	"time"
)

// Table is one extracted table: rows of cells, with the page it came from
// (0 for DOCX, where pages are unknown).
type Table struct {
	Page int        `json:"page,omitempty"`
	Num  int        `json:"num"`
	Rows [][]string `json:"rows"`
}

// Document is the loader output for one audit run: extracted plain text plus
// tabular cost/schedule data. Ephemeral; discarded after the run.
type Document struct {
	Path      string
	Format    string // constants.PDF | constants.DOCX
	Text      string
	Tables    []Table
	IsScanned bool   // OCR fallback was used
	Method    string // "pdf-text" | "pdf-ocr" | "docx"
	Pages     int
	SizeBytes int64
	Duration  time.Duration
	Warnings  []string
}

// Metadata summarizes the document for reports and logs.
type Metadata struct {
	Filename   string  `json:"filename"`
	SizeMB     float64 `json:"size_mb"`
	Format     string  `json:"format"`
	WordCount  int     `json:"word_count"`
	IsScanned  bool    `json:"is_scanned"`
	TableCount int     `json:"tables_found"`
	PageCount  int     `json:"page_count"`
}

func (d *Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

func (d *Document) Metadata() Metadata {
	return Metadata{
		Filename:   baseName(d.Path),
		SizeMB:     float64(d.SizeBytes) / (1 << 20),
		Format:     d.Format,
		WordCount:  d.WordCount(),
		IsScanned:  d.IsScanned,
		TableCount: len(d.Tables),
		PageCount:  d.Pages,
	}
}
