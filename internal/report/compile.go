package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/document"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
)

// ScoreSummary is the compiled scorecard header: counts per status and risk
// bucket plus the weighted overall score.
type ScoreSummary struct {
	Total    int `json:"total"`
	Met      int `json:"met"`
	Partial  int `json:"partial"`
	NotMet   int `json:"not_met"`
	Critical int `json:"critical_risk"`
	High     int `json:"high_risk"`
	Medium   int `json:"medium_risk"`
	Low      int `json:"low_risk"`

	// Score weights Met at 1.0 and Partial at 0.5, scaled to 0..100 and
	// rounded to one decimal.
	Score float64 `json:"score"`

	// RiskRating buckets the score against the fixed thresholds.
	RiskRating string `json:"risk_rating"`
}

// Escalation is one finding requiring immediate attention.
type Escalation struct {
	Pillar         string `json:"pillar"`
	Status         string `json:"status"`
	Risk           string `json:"risk"`
	Evidence       string `json:"evidence"`
	Recommendation string `json:"recommendation"`

	// RequiresEscalation marks failures on the pillars that block a
	// divestment outright (Pricing Model, Schedule).
	RequiresEscalation bool `json:"requires_escalation"`
}

// AuditReport aggregates everything one audit run produced.
type AuditReport struct {
	ProjectName      string              `json:"project_name"`
	SourceFile       string              `json:"source_file"`
	GeneratedAt      time.Time           `json:"generated_at"`
	ExecutiveSummary string              `json:"executive_summary"`
	GoNoGo           string              `json:"go_no_go"`
	Score            ScoreSummary        `json:"score"`
	Findings         []llm.Finding       `json:"findings"`
	CriticalRisks    []string            `json:"critical_risks,omitempty"`
	Redlines         []string            `json:"actionable_redlines,omitempty"`
	Escalations      []Escalation        `json:"escalations,omitempty"`
	Pricing          PricingCompliance   `json:"pricing_compliance"`
	Schedule         ScheduleCompliance  `json:"schedule_compliance"`
	Document         document.Metadata   `json:"document_metadata"`
	Timeline         llm.Timeline        `json:"-"`
	Model            string              `json:"ai_model,omitempty"`
	ContentSummary   *llm.ContentSummary `json:"content_summary,omitempty"`
}

// Compile deterministically maps an analysis onto a scorecard. Findings are
// reordered into the canonical pillar order regardless of how the model
// ordered them; a missing, duplicated, or unknown pillar aborts the run.
func Compile(analysis *llm.Analysis, meta document.Metadata, timeline llm.Timeline) (*AuditReport, error) {
	if analysis == nil {
		return nil, common.ParseError("analysis is nil", nil)
	}
	if err := validateFindings(analysis.Findings); err != nil {
		return nil, err
	}

	findings := make([]llm.Finding, len(analysis.Findings))
	copy(findings, analysis.Findings)
	sort.SliceStable(findings, func(i, j int) bool {
		return constants.PillarIndex(findings[i].Name) < constants.PillarIndex(findings[j].Name)
	})

	score := summarize(findings)

	rep := &AuditReport{
		ProjectName:      timeline.ProjectName,
		SourceFile:       meta.Filename,
		GeneratedAt:      time.Now(),
		ExecutiveSummary: analysis.ExecutiveSummary,
		GoNoGo:           analysis.GoNoGo,
		Score:            score,
		Findings:         findings,
		CriticalRisks:    analysis.CriticalRisks,
		Redlines:         analysis.ActionableRedlines,
		Escalations:      criticalFailures(findings),
		Pricing:          CheckPricingModel(findings),
		Schedule:         CheckSchedule(findings),
		Document:         meta,
		Timeline:         timeline,
		Model:            analysis.Model,
	}
	if rep.GoNoGo == "" {
		rep.GoNoGo = deriveGoNoGo(score)
	}
	return rep, nil
}

// validateFindings enforces that all mandatory pillars are present exactly once.
func validateFindings(findings []llm.Finding) error {
	seen := make(map[string]int, constants.NumPillars)
	for _, f := range findings {
		if constants.PillarIndex(f.Name) < 0 {
			return common.ParseError(fmt.Sprintf("unknown pillar %q in analysis", f.Name), nil)
		}
		seen[f.Name]++
		if seen[f.Name] > 1 {
			return common.ParseError(fmt.Sprintf("pillar %q appears more than once", f.Name), nil)
		}
	}
	if len(seen) != constants.NumPillars {
		var missing []string
		for _, p := range constants.Pillars() {
			if seen[string(p)] == 0 {
				missing = append(missing, string(p))
			}
		}
		return common.ParseError(fmt.Sprintf("analysis is missing mandatory pillars: %v", missing), nil)
	}
	return nil
}

func summarize(findings []llm.Finding) ScoreSummary {
	s := ScoreSummary{Total: len(findings)}
	for _, f := range findings {
		switch f.Status {
		case constants.StatusMet:
			s.Met++
		case constants.StatusPartial:
			s.Partial++
		case constants.StatusNotMet:
			s.NotMet++
		}
		switch f.RiskLevel {
		case constants.RiskCritical:
			s.Critical++
		case constants.RiskHigh:
			s.High++
		case constants.RiskMedium:
			s.Medium++
		case constants.RiskLow:
			s.Low++
		}
	}
	if s.Total > 0 {
		raw := (float64(s.Met) + 0.5*float64(s.Partial)) / float64(s.Total) * 100
		s.Score = math.Round(raw*10) / 10
	}
	switch {
	case s.Score < constants.HighRiskThreshold:
		s.RiskRating = "High Risk"
	case s.Score < constants.MediumRiskThreshold:
		s.RiskRating = "Medium Risk"
	default:
		s.RiskRating = "Low Risk"
	}
	return s
}

// criticalFailures lists findings that are Not Met or carry Critical/High
// risk, sorted most severe first.
func criticalFailures(findings []llm.Finding) []Escalation {
	var out []Escalation
	for _, f := range findings {
		if f.Status != constants.StatusNotMet &&
			f.RiskLevel != constants.RiskCritical && f.RiskLevel != constants.RiskHigh {
			continue
		}
		out = append(out, Escalation{
			Pillar:             f.Name,
			Status:             string(f.Status),
			Risk:               string(f.RiskLevel),
			Evidence:           f.Evidence,
			Recommendation:     f.Recommendation,
			RequiresEscalation: requiresEscalation(f),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return constants.RiskRank(constants.RiskLevel(out[i].Risk)) <
			constants.RiskRank(constants.RiskLevel(out[j].Risk))
	})
	return out
}

// requiresEscalation flags the two pillars whose failure blocks the project.
func requiresEscalation(f llm.Finding) bool {
	if f.Status == constants.StatusMet {
		return false
	}
	return f.Name == string(constants.PricingModel) || f.Name == string(constants.Schedule)
}

func deriveGoNoGo(s ScoreSummary) string {
	if s.Score >= constants.MediumRiskThreshold && s.Critical == 0 && s.NotMet == 0 {
		return "Go"
	}
	return "No-Go"
}
