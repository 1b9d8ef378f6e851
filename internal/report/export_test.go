package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/sow-auditor/constants"
)

func testReport(t *testing.T) *AuditReport {
	t.Helper()
	a := fullAnalysis(
		map[string]constants.FindingStatus{"Data Handling": constants.StatusNotMet},
		map[string]constants.RiskLevel{"Data Handling": constants.RiskHigh},
	)
	a.CriticalRisks = []string{"Data migration unverified before cutover"}
	a.ActionableRedlines = []string{"Add a data verification milestone"}
	rep, err := Compile(a, testMeta(), testTimeline())
	if err != nil {
		t.Fatal(err)
	}
	rep.GeneratedAt = time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)
	return rep
}

func TestReportFilename(t *testing.T) {
	ts := time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)
	got := ReportFilename("Atlas Carve-out (v2)", ts)
	want := "SOW_Audit_Atlas_Carve-out_v2_20250701_103000.pdf"
	if got != want {
		t.Errorf("ReportFilename = %q, want %q", got, want)
	}
	if !strings.HasPrefix(ReportFilename("", ts), "SOW_Audit_Untitled_") {
		t.Error("empty project name must fall back to Untitled")
	}
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePDF(testReport(t), filepath.Join(dir, "reports"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if len(data) < 2000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteXLSX(testReport(t), dir)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Scorecard")
	if err != nil {
		t.Fatal(err)
	}
	// summary block + blank + header + nine pillar rows
	if len(rows) < 8+constants.NumPillars {
		t.Fatalf("scorecard has %d rows", len(rows))
	}
	header := rows[7]
	if header[1] != "Pillar" || header[2] != "Status" {
		t.Errorf("header row = %v", header)
	}
	first := rows[8]
	if first[1] != "Pricing Model" {
		t.Errorf("first pillar row = %v", first)
	}
}

func TestClipRunesKeepsMultibyteIntact(t *testing.T) {
	long := strings.Repeat("ü", 70)
	got := clipRunes(long, 60)
	if !utf8.ValidString(got) {
		t.Fatalf("clip split a code point: %q", got)
	}
	if utf8.RuneCountInString(got) != 60 {
		t.Errorf("rune count = %d, want 60", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("missing ellipsis: %q", got)
	}
	if clipRunes("short", 60) != "short" {
		t.Error("short input must pass through unchanged")
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	rep := testReport(t)
	path, err := WriteJSON(rep, dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var round AuditReport
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatal(err)
	}
	if round.ProjectName != rep.ProjectName || round.Score.Score != rep.Score.Score {
		t.Errorf("sidecar round trip lost data: %+v", round.Score)
	}
	if len(round.Findings) != constants.NumPillars {
		t.Errorf("sidecar findings = %d", len(round.Findings))
	}
}
