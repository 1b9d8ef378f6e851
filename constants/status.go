package constants

import "strings"

// FindingStatus is the canonical per-pillar verdict.
type FindingStatus string

// Stable values (these exact strings appear in reports and history rows).
const (
	StatusMet     FindingStatus = "Met"
	StatusPartial FindingStatus = "Partial"
	StatusNotMet  FindingStatus = "Not Met"
)

// RiskLevel grades the exposure attached to a finding.
type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// Compliance thresholds over the 0..100 score.
const (
	HighRiskThreshold   = 60.0
	MediumRiskThreshold = 80.0
)

// CanonicalizeStatus maps loose model output ("not met", "NOT_MET", "partial")
// onto a FindingStatus.
func CanonicalizeStatus(input string) (FindingStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	switch s {
	case "met", "compliant", "pass":
		return StatusMet, true
	case "partial", "partially met", "partial compliance":
		return StatusPartial, true
	case "not met", "notmet", "non compliant", "fail", "failed":
		return StatusNotMet, true
	default:
		return "", false
	}
}

// CanonicalizeRisk maps loose model output onto a RiskLevel.
func CanonicalizeRisk(input string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "critical":
		return RiskCritical, true
	case "high":
		return RiskHigh, true
	case "medium", "moderate":
		return RiskMedium, true
	case "low":
		return RiskLow, true
	default:
		return "", false
	}
}

// RiskRank orders risk levels, most severe first. Unknown levels sort last.
func RiskRank(r RiskLevel) int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	default:
		return 4
	}
}
