package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// Timeline carries the user-supplied project deadlines the SOW schedule is
// audited against.
type Timeline struct {
	ProjectName string
	BuildEnd    time.Time
	TestEnd     time.Time
	CutoverEnd  time.Time
}

const dateLayout = "2006-01-02"

// ParseTimeline validates the user-entered project name and three ISO dates.
// Fails with an input error before any network call is attempted.
func ParseTimeline(project, buildEnd, testEnd, cutoverEnd string) (Timeline, error) {
	if project == "" {
		return Timeline{}, common.InputError("project name is required", nil)
	}
	parse := func(label, s string) (time.Time, error) {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, common.InputError(fmt.Sprintf("%s date %q is not YYYY-MM-DD", label, s), err)
		}
		return t, nil
	}
	b, err := parse("build end", buildEnd)
	if err != nil {
		return Timeline{}, err
	}
	t, err := parse("test end", testEnd)
	if err != nil {
		return Timeline{}, err
	}
	c, err := parse("cutover end", cutoverEnd)
	if err != nil {
		return Timeline{}, err
	}
	if t.Before(b) || c.Before(t) {
		return Timeline{}, common.InputError("phase dates must be ordered build <= test <= cutover", nil)
	}
	return Timeline{ProjectName: project, BuildEnd: b, TestEnd: t, CutoverEnd: c}, nil
}

// Finding is the per-pillar verdict produced by the analysis step.
type Finding struct {
	Name           string                  `json:"name"`
	Status         constants.FindingStatus `json:"status"`
	RiskLevel      constants.RiskLevel     `json:"risk_level"`
	Evidence       string                  `json:"evidence,omitempty"`
	Recommendation string                  `json:"recommendation,omitempty"`
}

// Analysis is the structured verdict for one audit run.
type Analysis struct {
	ExecutiveSummary   string    `json:"executive_summary"`
	GoNoGo             string    `json:"go_no_go,omitempty"` // "Go" | "No-Go"
	Findings           []Finding `json:"pillars"`
	CriticalRisks      []string  `json:"critical_risks,omitempty"`
	ActionableRedlines []string  `json:"actionable_redlines,omitempty"`
	Model              string    `json:"ai_model,omitempty"`
	AnalyzedAt         time.Time `json:"analysis_date,omitempty"`
}

// AnalyzeRequest is the input to the analysis client.
type AnalyzeRequest struct {
	DocumentText string
	TableCount   int
	Timeline     Timeline
}

// ContentSummary is the optional structured document digest appended to
// reports when requested.
type ContentSummary struct {
	Overview               string          `json:"overview"`
	KeySections            []string        `json:"key_sections,omitempty"`
	ScopeHighlights        []string        `json:"scope_highlights,omitempty"`
	Deliverables           []string        `json:"deliverables,omitempty"`
	TimelineOverview       string          `json:"timeline_overview,omitempty"`
	CostStructure          string          `json:"cost_structure,omitempty"`
	Parties                SummaryParties  `json:"parties_involved,omitempty"`
	SpecialTerms           []string        `json:"special_terms,omitempty"`
	TechnologyStack        []string        `json:"technology_stack,omitempty"`
	AssumptionsConstraints []string        `json:"assumptions_constraints,omitempty"`
}

type SummaryParties struct {
	VendorName string `json:"vendor_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	VendorRole string `json:"vendor_role,omitempty"`
	ClientRole string `json:"client_role,omitempty"`
}

// RedlineSuggestion is one proposed clause edit.
type RedlineSuggestion struct {
	Original string `json:"original"`
	Redlined string `json:"redlined"`
	Reason   string `json:"reason"`
}

// Analyzer is the interface the pipeline depends on.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*Analysis, []byte /*rawJSON*/, error)
	Summarize(ctx context.Context, documentText string, tableCount int) (*ContentSummary, error)
	SuggestRedlines(ctx context.Context, pillar, clause string) ([]RedlineSuggestion, error)
}
