package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// ScorecardXLSX returns an XLSX workbook (as bytes) with the compiled
// scorecard, one row per pillar plus a summary block.
func ScorecardXLSX(rep *AuditReport) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Scorecard"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Project")
	write(2, 1, rep.ProjectName)
	write(1, 2, "Source")
	write(2, 2, rep.Document.Filename)
	write(1, 3, "Score")
	write(2, 3, rep.Score.Score)
	write(1, 4, "Risk Rating")
	write(2, 4, rep.Score.RiskRating)
	write(1, 5, "Decision")
	write(2, 5, rep.GoNoGo)
	write(1, 6, "Generated")
	write(2, 6, rep.GeneratedAt.Format("2006-01-02 15:04"))

	headers := []string{"#", "Pillar", "Status", "Risk", "Evidence", "Recommendation"}
	headerRow := 8
	for i, h := range headers {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for i, finding := range rep.Findings {
		write(1, row, i+1)
		write(2, row, finding.Name)
		write(3, row, string(finding.Status))
		write(4, row, string(finding.RiskLevel))
		write(5, row, clipRunes(finding.Evidence, 200))
		write(6, row, clipRunes(finding.Recommendation, 200))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 4)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "D", 12)
	_ = f.SetColWidth(sheet, "E", "F", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the scorecard workbook next to the PDF report.
func WriteXLSX(rep *AuditReport, dir string) (string, error) {
	data, err := ScorecardXLSX(rep)
	if err != nil {
		return "", common.OutputError("build xlsx scorecard", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.OutputError("create reports directory", err)
	}
	name := strings.TrimSuffix(ReportFilename(rep.ProjectName, rep.GeneratedAt), ".pdf") + ".xlsx"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", common.OutputError("write xlsx scorecard", err)
	}
	return path, nil
}

func clipRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
