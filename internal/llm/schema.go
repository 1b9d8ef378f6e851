package llm

import (
	"github.com/joseph-ayodele/sow-auditor/constants"
)

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We send it to the model as a structured-output hint and also
// use it locally to validate the response.
func BuildAnalysisJSONSchema() map[string]any {
	statusEnum := []string{
		string(constants.StatusMet),
		string(constants.StatusPartial),
		string(constants.StatusNotMet),
	}
	riskEnum := []string{
		string(constants.RiskCritical),
		string(constants.RiskHigh),
		string(constants.RiskMedium),
		string(constants.RiskLow),
	}

	pillarItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":           map[string]any{"type": "string", "enum": constants.PillarNames()},
			"status":         map[string]any{"type": "string", "enum": statusEnum},
			"risk_level":     map[string]any{"type": "string", "enum": riskEnum},
			"evidence":       map[string]any{"type": "string"},
			"recommendation": map[string]any{"type": "string"},
		},
		"required": []string{"name", "status", "risk_level"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"executive_summary": map[string]any{"type": "string", "minLength": 1},
			"go_no_go":          map[string]any{"type": "string", "enum": []string{"Go", "No-Go"}},
			"pillars": map[string]any{
				"type":     "array",
				"minItems": constants.NumPillars,
				"maxItems": constants.NumPillars,
				"items":    pillarItem,
			},
			"critical_risks":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"actionable_redlines": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"executive_summary", "pillars"},
	}
}
