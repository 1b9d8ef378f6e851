package constants

import (
	"strings"
)

// Pillar is one of the nine mandatory divestment compliance checks.
type Pillar string

const (
	PricingModel            Pillar = "Pricing Model"
	Responsibilities        Pillar = "Responsibilities"
	Schedule                Pillar = "Schedule"
	Licensing               Pillar = "Licensing"
	MasterContractReference Pillar = "Master Contract Reference"
	SignOffBlocks           Pillar = "Sign-off Blocks"
	ChangeManagement        Pillar = "Change Management"
	RiskTermsMitigation     Pillar = "Risk & Terms Mitigation"
	DataHandling            Pillar = "Data Handling"
)

// allPillars fixes the canonical ordering used in prompts and scorecards.
var allPillars = []Pillar{
	PricingModel,
	Responsibilities,
	Schedule,
	Licensing,
	MasterContractReference,
	SignOffBlocks,
	ChangeManagement,
	RiskTermsMitigation,
	DataHandling,
}

// PillarDescriptions drive the prompt and the checkenv summary.
var PillarDescriptions = map[Pillar]string{
	PricingModel:            "Must be Fixed Cost, no Time & Material. Check for granular cost breakdown and payment milestones.",
	Responsibilities:        "Clear client vs. vendor responsibilities. No ambiguous language. RACI matrix or accountability defined.",
	Schedule:                "Clear Build, Test, Cutover dates aligned with project timeline. Milestones defined.",
	Licensing:               "Temporary licenses for Build/Test/Cutover with start/end dates and costs itemized.",
	MasterContractReference: "Explicit MSA or master contract number referenced between client and vendor.",
	SignOffBlocks:           "Formal signature spaces for both client and vendor parties.",
	ChangeManagement:        "Clear change request process with approval workflows defined.",
	RiskTermsMitigation:     "No vendor-favoring clauses. Liability terms favor the client. No delay-causing T&Cs.",
	DataHandling:            "Data verification step exists if extraction scope. Data quality checks before cutover.",
}

// NumPillars is the mandatory pillar count; every analysis must cover all of them.
const NumPillars = 9

func Pillars() []Pillar {
	out := make([]Pillar, len(allPillars))
	copy(out, allPillars)
	return out
}

func PillarNames() []string {
	result := make([]string, len(allPillars))
	for i, p := range allPillars {
		result[i] = string(p)
	}
	return result
}

// PillarIndex returns the canonical position of a pillar, or -1 when unknown.
func PillarIndex(name string) int {
	for i, p := range allPillars {
		if string(p) == name {
			return i
		}
	}
	return -1
}

// CanonicalizePillar maps loose model output back onto a known pillar.
func CanonicalizePillar(input string) (Pillar, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	// synonyms map
	synonyms := map[string]Pillar{
		"pricing":                 PricingModel,
		"cost model":              PricingModel,
		"timeline":                Schedule,
		"schedule & milestones":   Schedule,
		"licenses":                Licensing,
		"master contract":         MasterContractReference,
		"msa reference":           MasterContractReference,
		"signoff blocks":          SignOffBlocks,
		"sign off blocks":         SignOffBlocks,
		"signatures":              SignOffBlocks,
		"change control":          ChangeManagement,
		"risk mitigation":         RiskTermsMitigation,
		"risk and terms":          RiskTermsMitigation,
		"risk & terms":            RiskTermsMitigation,
		"data verification":       DataHandling,
		"data quality & handling": DataHandling,
	}

	if p, ok := synonyms[normalized]; ok {
		return p, true
	}

	for _, p := range allPillars {
		if normalized == strings.ToLower(string(p)) {
			return p, true
		}
	}

	return "", false
}
