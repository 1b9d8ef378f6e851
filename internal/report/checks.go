package report

import (
	"strings"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
)

// PricingCompliance is the deterministic keyword check for pricing language,
// run against the Pricing Model finding's evidence independently of the
// analysis verdict.
type PricingCompliance struct {
	FixedCostLanguage bool     `json:"fixed_cost_language"`
	TMLanguage        bool     `json:"tm_language"`
	Compliant         bool     `json:"compliant"`
	Issues            []string `json:"issues,omitempty"`
}

// ScheduleCompliance reports which delivery phases the Schedule finding's
// evidence mentions.
type ScheduleCompliance struct {
	BuildMentioned   bool     `json:"build_mentioned"`
	TestMentioned    bool     `json:"test_mentioned"`
	CutoverMentioned bool     `json:"cutover_mentioned"`
	Compliant        bool     `json:"compliant"`
	Issues           []string `json:"issues,omitempty"`
}

var fixedCostKeywords = []string{
	"fixed cost",
	"fixed price",
	"fixed-price",
	"lump sum",
	"firm fixed",
}

var tmKeywords = []string{
	"time and material",
	"time & material",
	"t&m",
	"hourly rate",
	"daily rate",
	"per diem rate",
}

// CheckPricingModel scans the Pricing Model finding's evidence for fixed-cost
// versus time-and-materials language. Compliant means fixed-cost wording is
// present and T&M wording is not.
func CheckPricingModel(findings []llm.Finding) PricingCompliance {
	ev := strings.ToLower(evidenceFor(findings, constants.PricingModel))
	c := PricingCompliance{
		FixedCostLanguage: containsAny(ev, fixedCostKeywords),
		TMLanguage:        containsAny(ev, tmKeywords),
	}
	if !c.FixedCostLanguage {
		c.Issues = append(c.Issues, "no fixed-cost pricing language in evidence")
	}
	if c.TMLanguage {
		c.Issues = append(c.Issues, "time-and-materials language in evidence")
	}
	c.Compliant = c.FixedCostLanguage && !c.TMLanguage
	return c
}

var (
	buildKeywords   = []string{"build phase", "build completion", "development phase", "construction phase", "build end"}
	testKeywords    = []string{"test phase", "testing phase", "uat", "user acceptance", "test completion", "sit "}
	cutoverKeywords = []string{"cutover", "cut-over", "go-live", "go live", "hypercare", "transition to operations"}
)

// CheckSchedule verifies the Schedule finding's evidence names the three
// mandatory delivery phases. Compliant requires all three.
func CheckSchedule(findings []llm.Finding) ScheduleCompliance {
	ev := strings.ToLower(evidenceFor(findings, constants.Schedule))
	c := ScheduleCompliance{
		BuildMentioned:   containsAny(ev, buildKeywords),
		TestMentioned:    containsAny(ev, testKeywords),
		CutoverMentioned: containsAny(ev, cutoverKeywords),
	}
	if !c.BuildMentioned {
		c.Issues = append(c.Issues, "build phase not referenced in evidence")
	}
	if !c.TestMentioned {
		c.Issues = append(c.Issues, "test phase not referenced in evidence")
	}
	if !c.CutoverMentioned {
		c.Issues = append(c.Issues, "cutover phase not referenced in evidence")
	}
	c.Compliant = c.BuildMentioned && c.TestMentioned && c.CutoverMentioned
	return c
}

func evidenceFor(findings []llm.Finding, pillar constants.Pillar) string {
	for _, f := range findings {
		if f.Name == string(pillar) {
			return f.Evidence
		}
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
