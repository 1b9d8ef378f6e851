package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// WriteJSON writes the machine-readable sidecar next to the PDF report.
func WriteJSON(rep *AuditReport, dir string) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", common.OutputError("marshal report", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.OutputError("create reports directory", err)
	}
	name := strings.TrimSuffix(ReportFilename(rep.ProjectName, rep.GeneratedAt), ".pdf") + ".json"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", common.OutputError("write json sidecar", err)
	}
	return path, nil
}
