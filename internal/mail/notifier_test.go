package mail

import (
	"strings"
	"testing"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
	"github.com/joseph-ayodele/sow-auditor/internal/report"
)

func testReport(t *testing.T) *report.AuditReport {
	t.Helper()
	a := &llm.Analysis{ExecutiveSummary: "summary", GoNoGo: "No-Go"}
	for _, name := range constants.PillarNames() {
		status := constants.StatusMet
		risk := constants.RiskLow
		if name == "Pricing Model" {
			status = constants.StatusNotMet
			risk = constants.RiskCritical
		}
		a.Findings = append(a.Findings, llm.Finding{
			Name: name, Status: status, RiskLevel: risk, Recommendation: "fix pricing",
		})
	}
	tl := llm.Timeline{
		ProjectName: "Atlas",
		BuildEnd:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TestEnd:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		CutoverEnd:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	rep, err := report.Compile(a, document.Metadata{Filename: "sow.pdf"}, tl)
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage(testReport(t), "", "auditor@example.com", "legal@example.com")
	if err != nil {
		t.Fatal(err)
	}
	subject := msg.GetGenHeader(gomail.HeaderSubject)
	if len(subject) == 0 || !strings.Contains(subject[0], "Atlas") {
		t.Errorf("subject = %v", subject)
	}
	if len(subject) > 0 && !strings.Contains(subject[0], "88.9") {
		t.Errorf("subject missing score: %v", subject)
	}
}

func TestBuildMessageRejectsBadAddresses(t *testing.T) {
	if _, err := BuildMessage(testReport(t), "", "not an address", "legal@example.com"); err == nil {
		t.Error("want error for invalid sender")
	}
	if _, err := BuildMessage(testReport(t), "", "auditor@example.com", ""); err == nil {
		t.Error("want error for empty recipient")
	}
}

func TestBodyText(t *testing.T) {
	body := BodyText(testReport(t))
	for _, want := range []string{
		"Atlas",
		"88.9 / 100",
		"No-Go",
		"8 of 9",
		"[Not Met] Pricing Model (Critical risk)",
		"Escalations:",
		"fix pricing",
		"sow.pdf",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
