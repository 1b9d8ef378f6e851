package pipeline

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
	"github.com/joseph-ayodele/sow-auditor/internal/history"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAnalyzer returns a canned full-coverage analysis without any network.
type fakeAnalyzer struct {
	analysis   *llm.Analysis
	analyzeErr error
	summary    *llm.ContentSummary
	summaryErr error
	gotText    string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req llm.AnalyzeRequest) (*llm.Analysis, []byte, error) {
	f.gotText = req.DocumentText
	if f.analyzeErr != nil {
		return nil, nil, f.analyzeErr
	}
	return f.analysis, nil, nil
}

func (f *fakeAnalyzer) Summarize(context.Context, string, int) (*llm.ContentSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeAnalyzer) SuggestRedlines(context.Context, string, string) ([]llm.RedlineSuggestion, error) {
	return nil, nil
}

func cannedAnalysis() *llm.Analysis {
	a := &llm.Analysis{ExecutiveSummary: "Solid SOW.", GoNoGo: "Go"}
	for _, name := range constants.PillarNames() {
		a.Findings = append(a.Findings, llm.Finding{
			Name:      name,
			Status:    constants.StatusMet,
			RiskLevel: constants.RiskLow,
			Evidence:  "found",
		})
	}
	return a
}

const docXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Fixed price SOW. Build phase, UAT, and go-live dates are defined.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeFixtureDOCX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sow.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRequest(path string) RunRequest {
	return RunRequest{
		FilePath: path,
		Timeline: llm.Timeline{
			ProjectName: "Atlas",
			BuildEnd:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			TestEnd:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			CutoverEnd:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestProcessorRun(t *testing.T) {
	fa := &fakeAnalyzer{analysis: cannedAnalysis()}
	loader := document.NewLoader(document.Config{}, testLogger())
	dir := t.TempDir()
	p := NewProcessor(loader, fa, nil, nil, dir, testLogger())

	res, err := p.Run(context.Background(), testRequest(writeFixtureDOCX(t)))
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.Score.Score != 100.0 {
		t.Errorf("score = %.1f, want 100.0", res.Report.Score.Score)
	}
	if !strings.Contains(fa.gotText, "Fixed price SOW") {
		t.Error("extracted document text did not reach the analyzer")
	}
	for _, path := range []string{res.PDFPath, res.XLSXPath, res.JSONPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export missing: %v", err)
		}
	}
	if res.EmailSent || res.EmailError != nil {
		t.Error("no email requested, none should be attempted")
	}
}

func TestProcessorRunRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	store, err := history.Open(context.Background(), filepath.Join(dir, "runs.db"), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	fa := &fakeAnalyzer{analysis: cannedAnalysis()}
	loader := document.NewLoader(document.Config{}, testLogger())
	p := NewProcessor(loader, fa, nil, store, dir, testLogger())

	res, err := p.Run(context.Background(), testRequest(writeFixtureDOCX(t)))
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("history rows = %d, want 1", len(runs))
	}
	if runs[0].ID != res.RunID || runs[0].Project != "Atlas" || runs[0].Score != 100.0 {
		t.Errorf("recorded run = %+v", runs[0])
	}
	if runs[0].ReportPath != res.PDFPath {
		t.Errorf("report path = %q, want %q", runs[0].ReportPath, res.PDFPath)
	}
}

func TestProcessorRunHistoryFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	store, err := history.Open(context.Background(), filepath.Join(dir, "runs.db"), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	// closed store: every insert fails, but the exported reports must survive
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	fa := &fakeAnalyzer{analysis: cannedAnalysis()}
	loader := document.NewLoader(document.Config{}, testLogger())
	p := NewProcessor(loader, fa, nil, store, dir, testLogger())

	res, err := p.Run(context.Background(), testRequest(writeFixtureDOCX(t)))
	if err != nil {
		t.Fatalf("history failure must not abort the run: %v", err)
	}
	if res.HistoryError == nil {
		t.Error("failed insert must be reported on the result")
	}
	if res.RunID != uuid.Nil {
		t.Errorf("run id = %v, want zero when insert fails", res.RunID)
	}
	for _, path := range []string{res.PDFPath, res.XLSXPath, res.JSONPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export missing after history failure: %v", err)
		}
	}
}

func TestProcessorRunAnalyzeFailureAborts(t *testing.T) {
	fa := &fakeAnalyzer{analyzeErr: errors.New("endpoint unreachable")}
	loader := document.NewLoader(document.Config{}, testLogger())
	p := NewProcessor(loader, fa, nil, nil, t.TempDir(), testLogger())

	if _, err := p.Run(context.Background(), testRequest(writeFixtureDOCX(t))); err == nil {
		t.Fatal("analysis failure must abort the run")
	}
}

func TestProcessorRunSummaryFailureIsNotFatal(t *testing.T) {
	fa := &fakeAnalyzer{analysis: cannedAnalysis(), summaryErr: errors.New("timeout")}
	loader := document.NewLoader(document.Config{}, testLogger())
	p := NewProcessor(loader, fa, nil, nil, t.TempDir(), testLogger())

	req := testRequest(writeFixtureDOCX(t))
	req.IncludeSummary = true
	res, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("summary failure must not abort the run: %v", err)
	}
	if res.Report.ContentSummary != nil {
		t.Error("failed summary must leave the report without a digest")
	}
}

func TestProcessorRunEmailWithoutNotifier(t *testing.T) {
	fa := &fakeAnalyzer{analysis: cannedAnalysis()}
	loader := document.NewLoader(document.Config{}, testLogger())
	p := NewProcessor(loader, fa, nil, nil, t.TempDir(), testLogger())

	req := testRequest(writeFixtureDOCX(t))
	req.Email = true
	res, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("missing SMTP config must not fail the audit: %v", err)
	}
	if res.EmailSent {
		t.Error("email cannot be sent without a notifier")
	}
	if res.EmailError == nil {
		t.Error("delivery failure must be reported on the result")
	}
}
