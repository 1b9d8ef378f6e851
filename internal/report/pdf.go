package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

const filenameStamp = "20060102_150405"

// ReportFilename builds the canonical report name for a run.
func ReportFilename(project string, t time.Time) string {
	return fmt.Sprintf("SOW_Audit_%s_%s.pdf", safeName(project), t.Format(filenameStamp))
}

// safeName keeps filenames portable: alphanumerics, dash and underscore only.
func safeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "Untitled"
	}
	return b.String()
}

// WritePDF renders the audit report and writes it under dir, creating the
// directory if needed. Returns the full path of the written file.
func WritePDF(rep *AuditReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.OutputError("create reports directory", err)
	}
	path := filepath.Join(dir, ReportFilename(rep.ProjectName, rep.GeneratedAt))

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("SOW Audit Report - "+rep.ProjectName, false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	coverPage(pdf, tr, rep)
	summaryPage(pdf, tr, rep)
	scorecardPage(pdf, tr, rep)
	findingsPages(pdf, tr, rep)
	riskPage(pdf, tr, rep)
	if rep.ContentSummary != nil {
		summarySection(pdf, tr, rep)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", common.OutputError("write pdf report", err)
	}
	return path, nil
}

func coverPage(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	pdf.AddPage()
	pdf.SetY(60)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(31, 56, 100)
	pdf.CellFormat(0, 14, "SOW Audit Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(rep.ProjectName), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	r, g, b := ratingColor(rep.Score.RiskRating)
	pdf.SetFont("Helvetica", "B", 40)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 20, fmt.Sprintf("%.1f / 100", rep.Score.Score), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, rep.Score.RiskRating, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	lines := []string{
		fmt.Sprintf("Decision: %s", rep.GoNoGo),
		fmt.Sprintf("Criteria Met: %d of %d (%d partial)", rep.Score.Met, rep.Score.Total, rep.Score.Partial),
		fmt.Sprintf("Source: %s (%s, %d pages)", rep.Document.Filename, strings.ToUpper(rep.Document.Format), rep.Document.PageCount),
		fmt.Sprintf("Generated: %s", rep.GeneratedAt.Format("2006-01-02 15:04")),
	}
	if rep.Model != "" {
		lines = append(lines, fmt.Sprintf("Analysis model: %s", rep.Model))
	}
	for _, ln := range lines {
		pdf.CellFormat(0, 7, tr(ln), "", 1, "C", false, 0, "")
	}
}

func summaryPage(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	pdf.AddPage()
	heading(pdf, "Executive Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5.5, tr(rep.ExecutiveSummary), "", "L", false)
	pdf.Ln(4)

	tl := rep.Timeline
	heading(pdf, "Project Timeline")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range [][2]string{
		{"Build end", tl.BuildEnd.Format("2006-01-02")},
		{"Test end", tl.TestEnd.Format("2006-01-02")},
		{"Cutover end", tl.CutoverEnd.Format("2006-01-02")},
	} {
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
}

func scorecardPage(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	pdf.AddPage()
	heading(pdf, "Compliance Scorecard")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(31, 56, 100)
	pdf.SetTextColor(255, 255, 255)
	widths := []float64{70, 30, 30, 65}
	for i, h := range []string{"Pillar", "Status", "Risk", "Recommendation"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, f := range rep.Findings {
		if fill {
			pdf.SetFillColor(240, 243, 248)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(widths[0], 7, tr(f.Name), "1", 0, "L", true, 0, "")
		sr, sg, sb := statusColor(f.Status)
		pdf.SetTextColor(sr, sg, sb)
		pdf.CellFormat(widths[1], 7, string(f.Status), "1", 0, "C", true, 0, "")
		rr, rg, rb := riskColor(f.RiskLevel)
		pdf.SetTextColor(rr, rg, rb)
		pdf.CellFormat(widths[2], 7, string(f.RiskLevel), "1", 0, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[3], 7, tr(clipRunes(f.Recommendation, 60)), "1", 1, "L", true, 0, "")
		fill = !fill
	}

	pdf.Ln(6)
	heading(pdf, "Automated Checks")
	pdf.SetFont("Helvetica", "", 10)
	checkLine(pdf, tr, "Pricing language", rep.Pricing.Compliant, rep.Pricing.Issues)
	checkLine(pdf, tr, "Delivery phases", rep.Schedule.Compliant, rep.Schedule.Issues)
}

func findingsPages(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	pdf.AddPage()
	heading(pdf, "Detailed Findings")
	for _, f := range rep.Findings {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr(f.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s    Risk: %s", f.Status, f.RiskLevel), "", 1, "L", false, 0, "")
		if f.Evidence != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, tr("Evidence: "+f.Evidence), "", "L", false)
		}
		if f.Recommendation != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 5, tr("Recommendation: "+f.Recommendation), "", "L", false)
		}
		pdf.Ln(3)
	}
}

func riskPage(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	if len(rep.Escalations) == 0 && len(rep.CriticalRisks) == 0 && len(rep.Redlines) == 0 {
		return
	}
	pdf.AddPage()
	if len(rep.Escalations) > 0 {
		heading(pdf, "Escalations")
		for _, e := range rep.Escalations {
			pdf.SetFont("Helvetica", "B", 10)
			label := fmt.Sprintf("%s (%s, %s risk)", e.Pillar, e.Status, e.Risk)
			if e.RequiresEscalation {
				label += "  ** BLOCKS DIVESTMENT **"
			}
			pdf.MultiCell(0, 6, tr(label), "", "L", false)
			if e.Recommendation != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.MultiCell(0, 5, tr(e.Recommendation), "", "L", false)
			}
			pdf.Ln(2)
		}
	}
	if len(rep.CriticalRisks) > 0 {
		heading(pdf, "Critical Risks")
		bulletList(pdf, tr, rep.CriticalRisks)
	}
	if len(rep.Redlines) > 0 {
		heading(pdf, "Actionable Redlines")
		bulletList(pdf, tr, rep.Redlines)
	}
}

func summarySection(pdf *fpdf.Fpdf, tr func(string) string, rep *AuditReport) {
	cs := rep.ContentSummary
	pdf.AddPage()
	heading(pdf, "Document Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5.5, tr(cs.Overview), "", "L", false)
	pdf.Ln(2)
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Key Sections", cs.KeySections},
		{"Scope Highlights", cs.ScopeHighlights},
		{"Deliverables", cs.Deliverables},
		{"Special Terms", cs.SpecialTerms},
		{"Technology Stack", cs.TechnologyStack},
		{"Assumptions & Constraints", cs.AssumptionsConstraints},
	} {
		if len(sec.items) == 0 {
			continue
		}
		heading(pdf, sec.title)
		bulletList(pdf, tr, sec.items)
	}
	if cs.CostStructure != "" {
		heading(pdf, "Cost Structure")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5.5, tr(cs.CostStructure), "", "L", false)
	}
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(31, 56, 100)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func bulletList(pdf *fpdf.Fpdf, tr func(string) string, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		pdf.MultiCell(0, 5.5, tr("- "+it), "", "L", false)
	}
	pdf.Ln(2)
}

func checkLine(pdf *fpdf.Fpdf, tr func(string) string, label string, ok bool, issues []string) {
	verdict := "PASS"
	r, g, b := 21, 128, 61
	if !ok {
		verdict = "FAIL"
		r, g, b = 185, 28, 28
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(35, 6, verdict, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
	for _, is := range issues {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(35, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr(is), "", 1, "L", false, 0, "")
	}
}

func ratingColor(rating string) (int, int, int) {
	switch rating {
	case "Low Risk":
		return 21, 128, 61
	case "Medium Risk":
		return 202, 138, 4
	default:
		return 185, 28, 28
	}
}

func statusColor(s constants.FindingStatus) (int, int, int) {
	switch s {
	case constants.StatusMet:
		return 21, 128, 61
	case constants.StatusPartial:
		return 202, 138, 4
	default:
		return 185, 28, 28
	}
}

func riskColor(r constants.RiskLevel) (int, int, int) {
	switch r {
	case constants.RiskLow:
		return 21, 128, 61
	case constants.RiskMedium:
		return 202, 138, 4
	default:
		return 185, 28, 28
	}
}
