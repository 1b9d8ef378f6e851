package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/sow-auditor/constants"
)

// StripCodeFences removes markdown ```json fences some models wrap around an
// otherwise valid JSON payload.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// NormalizeAndSanitizeJSON
// - Renames known synonyms (findings -> pillars, risklevel -> risk_level)
// - Canonicalizes pillar names, statuses, and risk levels
// - Falls back across evidence field variants the model may emit
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename top-level synonyms to our schema
	renamed("findings", "pillars")
	renamed("pillar_analysis", "pillars")
	renamed("summary", "executive_summary")
	renamed("go_nogo", "go_no_go")
	renamed("decision", "go_no_go")
	renamed("risks", "critical_risks")
	renamed("redlines", "actionable_redlines")

	// 2) normalize the go/no-go value
	if v, ok := m["go_no_go"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "go":
			m["go_no_go"] = "Go"
		case "no-go", "no go", "nogo":
			m["go_no_go"] = "No-Go"
		default:
			delete(m, "go_no_go")
			dropped = append(dropped, "go_no_go(unknown)")
		}
	}

	// 3) per-pillar cleanup
	if rawPillars, ok := m["pillars"].([]any); ok {
		cleaned := make([]any, 0, len(rawPillars))
		for i, rp := range rawPillars {
			p, ok := rp.(map[string]any)
			if !ok {
				dropped = append(dropped, fmt.Sprintf("pillars[%d](type)", i))
				continue
			}
			cp, d := sanitizePillar(p, i)
			dropped = append(dropped, d...)
			cleaned = append(cleaned, cp)
		}
		m["pillars"] = cleaned
	}

	// 4) remove unknown top-level keys
	allowed := map[string]struct{}{
		"executive_summary": {}, "go_no_go": {}, "pillars": {},
		"critical_risks": {}, "actionable_redlines": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.analyze.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// evidenceSynonyms is the preference order of field names models put the key
// finding under when they ignore the schema.
var evidenceSynonyms = []string{"evidence", "key_finding", "finding", "details", "observation", "analysis"}

func sanitizePillar(p map[string]any, idx int) (map[string]any, []string) {
	var dropped []string
	tag := func(k string) string { return fmt.Sprintf("pillars[%d].%s", idx, k) }

	out := map[string]any{}

	// name: canonicalize against the fixed pillar set
	if v, ok := p["name"].(string); ok {
		if canon, ok := constants.CanonicalizePillar(v); ok {
			out["name"] = string(canon)
		} else {
			out["name"] = strings.TrimSpace(v)
			dropped = append(dropped, tag("name(unknown)"))
		}
	} else if v, ok := p["pillar"].(string); ok {
		if canon, ok := constants.CanonicalizePillar(v); ok {
			out["name"] = string(canon)
			dropped = append(dropped, tag("pillar->name"))
		}
	}

	// status
	if v, ok := p["status"].(string); ok {
		if canon, ok := constants.CanonicalizeStatus(v); ok {
			out["status"] = string(canon)
		} else {
			dropped = append(dropped, tag("status(unknown)"))
		}
	}

	// risk_level under its several spellings
	for _, k := range []string{"risk_level", "risklevel", "riskLevel", "risk"} {
		if v, ok := p[k].(string); ok {
			if canon, ok := constants.CanonicalizeRisk(v); ok {
				out["risk_level"] = string(canon)
				if k != "risk_level" {
					dropped = append(dropped, tag(k+"->risk_level"))
				}
			}
			break
		}
	}

	// evidence: first non-empty synonym wins
	for _, k := range evidenceSynonyms {
		if v, ok := p[k].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				out["evidence"] = s
				if k != "evidence" {
					dropped = append(dropped, tag(k+"->evidence"))
				}
				break
			}
		}
	}

	// recommendation: accept a string or a list of strings
	switch v := p["recommendation"].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out["recommendation"] = s
		}
	case []any:
		var parts []string
		for _, it := range v {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		if len(parts) > 0 {
			out["recommendation"] = strings.Join(parts, " ")
			dropped = append(dropped, tag("recommendation(list)"))
		}
	}
	if _, ok := out["recommendation"]; !ok {
		if v, ok := p["recommendations"].([]any); ok {
			var parts []string
			for _, it := range v {
				if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
			if len(parts) > 0 {
				out["recommendation"] = strings.Join(parts, " ")
				dropped = append(dropped, tag("recommendations->recommendation"))
			}
		}
	}

	return out, dropped
}
