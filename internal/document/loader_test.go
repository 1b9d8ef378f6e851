package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRunner answers canned output per command name.
type fakeRunner struct {
	stdout map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok && err != nil {
		return nil, []byte("boom"), err
	}
	return []byte(f.stdout[name]), nil, nil
}

func TestLoadRejectsMissingFile(t *testing.T) {
	l := NewLoader(Config{}, testLogger())
	if _, err := l.Load(context.Background(), "/nonexistent/sow.pdf"); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	l := NewLoader(Config{}, testLogger())
	path := writeDOCX(t, sampleDocumentXML) // valid file, wrong extension below
	bad := strings.TrimSuffix(path, ".docx") + ".txt"
	if err := os.Rename(path, bad); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background(), bad); err == nil {
		t.Fatal("want error for unsupported extension")
	}
}

func TestPdfToTextCountsPages(t *testing.T) {
	l := NewLoader(Config{}, testLogger())
	l.runner = &fakeRunner{stdout: map[string]string{
		"pdftotext": "page one\ftwo\fthree",
	}}
	text, pages, warns, err := l.pdfToText(context.Background(), "in.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}
	if !strings.Contains(text, "page one") {
		t.Errorf("text = %q", text)
	}
}

func TestPdfToTextFailure(t *testing.T) {
	l := NewLoader(Config{}, testLogger())
	l.runner = &fakeRunner{errs: map[string]error{"pdftotext": fmt.Errorf("exit status 1")}}
	_, _, warns, err := l.pdfToText(context.Background(), "in.pdf")
	if err == nil {
		t.Fatal("want error when pdftotext fails")
	}
	if len(warns) == 0 || warns[0] != "boom" {
		t.Errorf("stderr not surfaced: %v", warns)
	}
}

func TestPdfToOCRNoPagesRendered(t *testing.T) {
	// pdftoppm succeeds but writes nothing; the fallback must fail loudly
	// rather than audit an empty document.
	l := NewLoader(Config{}, testLogger())
	l.runner = &fakeRunner{stdout: map[string]string{"pdftoppm": ""}}
	if _, _, _, err := l.pdfToOCR(context.Background(), "scan.pdf"); err == nil {
		t.Fatal("want error when no page images are produced")
	}
}

func TestTesseractOCR(t *testing.T) {
	l := NewLoader(Config{TesseractLang: "eng"}, testLogger())
	fr := &fakeRunner{stdout: map[string]string{"tesseract": "recognized text"}}
	l.runner = fr
	text, _, err := l.tesseractOCR(context.Background(), "page-1.png")
	if err != nil {
		t.Fatal(err)
	}
	if text != "recognized text" {
		t.Errorf("text = %q", text)
	}
	if len(fr.calls) != 1 || fr.calls[0] != "tesseract" {
		t.Errorf("calls = %v", fr.calls)
	}
}

func TestLoaderDefaults(t *testing.T) {
	l := NewLoader(Config{}, nil)
	if l.cfg.Pdftotext != "pdftotext" || l.cfg.Tesseract != "tesseract" {
		t.Errorf("binary defaults not applied: %+v", l.cfg)
	}
	if l.cfg.MinWords != 50 {
		t.Errorf("MinWords = %d, want 50", l.cfg.MinWords)
	}
	if l.cfg.DPI != 300 {
		t.Errorf("DPI = %d, want 300", l.cfg.DPI)
	}
}
