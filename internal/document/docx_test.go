package document

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Statement of Work for Project Atlas.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Pricing is </w:t></w:r><w:r><w:t>fixed cost</w:t></w:r><w:r><w:t xml:space="preserve"> with milestones.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Milestone</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Amount</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Build</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>50,000</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Signed by both parties.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDOCX(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDOCX(t *testing.T) {
	path := writeDOCX(t, sampleDocumentXML)
	l := NewLoader(Config{}, testLogger())

	doc, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Format != "DOCX" || doc.Method != "docx" {
		t.Errorf("format/method = %q/%q", doc.Format, doc.Method)
	}
	if !strings.Contains(doc.Text, "Project Atlas") {
		t.Errorf("text missing first paragraph:\n%s", doc.Text)
	}
	if !strings.Contains(doc.Text, "fixed cost with milestones") {
		t.Errorf("split runs not joined:\n%s", doc.Text)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(doc.Tables))
	}
	rows := doc.Tables[0].Rows
	if len(rows) != 2 || rows[0][0] != "Milestone" || rows[1][1] != "50,000" {
		t.Errorf("table rows = %v", rows)
	}
	if !strings.Contains(doc.Text, "[TABLE 1]") {
		t.Errorf("table digest missing from text:\n%s", doc.Text)
	}
}

func TestLoadDOCXWithoutDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(Config{}, testLogger())
	if _, err := l.Load(context.Background(), path); err == nil {
		t.Fatal("want error for docx without word/document.xml")
	}
}
