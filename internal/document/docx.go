package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// loadDOCX reads paragraphs and tables from word/document.xml inside the
// OOXML zip container. No external tooling is needed; the format is plain
// zipped XML.
func (l *Loader) loadDOCX(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, common.InputError(fmt.Sprintf("open docx %q", path), err)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			l.logger.Warn("document.docx.close_failed", "path", path, "error", cerr)
		}
	}()

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return nil, common.InputError(fmt.Sprintf("docx %q has no word/document.xml", path), nil)
	}

	rc, err := docXML.Open()
	if err != nil {
		return nil, common.InputError(fmt.Sprintf("read docx %q", path), err)
	}
	defer rc.Close()

	paragraphs, tables, err := parseDocumentXML(rc)
	if err != nil {
		return nil, common.InputError(fmt.Sprintf("parse docx %q", path), err)
	}

	doc := &Document{Method: "docx", Pages: 1, Tables: tables}
	doc.Text = appendTableDigest(Normalize(strings.Join(paragraphs, "\n")), tables)
	return doc, nil
}

// parseDocumentXML walks the WordprocessingML token stream. Paragraph text
// lives in w:t runs; tables nest w:tbl > w:tr > w:tc. Tab and break runs
// become whitespace so adjacent words don't fuse.
func parseDocumentXML(r io.Reader) ([]string, []Table, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		tables     []Table

		para       strings.Builder
		cell       strings.Builder
		row        []string
		rows       [][]string
		tableDepth int
	)

	flushPara := func() {
		if s := strings.TrimSpace(para.String()); s != "" {
			paragraphs = append(paragraphs, s)
		}
		para.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = nil
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			case "t":
				var s string
				if err := dec.DecodeElement(&s, &t); err != nil {
					return nil, nil, err
				}
				if tableDepth > 0 {
					cell.WriteString(s)
				} else {
					para.WriteString(s)
				}
			case "tab", "br":
				if tableDepth > 0 {
					cell.WriteString(" ")
				} else {
					para.WriteString(" ")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if tableDepth == 0 {
					flushPara()
				} else {
					cell.WriteString(" ")
				}
			case "tc":
				if tableDepth > 0 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "tr":
				if tableDepth > 0 && len(row) > 0 {
					rows = append(rows, row)
				}
			case "tbl":
				tableDepth--
				if tableDepth == 0 && len(rows) > 0 {
					tables = append(tables, Table{Num: len(tables) + 1, Rows: rows})
					rows = nil
				}
			}
		}
	}
	flushPara()
	return paragraphs, tables, nil
}
