package llm

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/sow-auditor/constants"
)

// MaxPromptChars caps how much document text goes into the user prompt.
const MaxPromptChars = 15000

// truncateRunes cuts s to at most n runes, never splitting a multi-byte
// code point the way a raw byte slice would.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildSystemPrompt frames the model as a divestment SOW auditor and defines
// the per-pillar response contract.
func BuildSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a Senior Divestment SOW Auditor & IT Contracts Expert acting for the divesting client.\n\n")
	b.WriteString("Your role is to analyze Statements of Work (SOW) for divestment projects and evaluate them against ")
	b.WriteString(fmt.Sprintf("%d mandatory pillars:\n\n", constants.NumPillars))
	for i, p := range constants.Pillars() {
		b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, p, constants.PillarDescriptions[p]))
	}
	b.WriteString(`
For each pillar, respond with:
- status: "Met", "Not Met", or "Partial"
- evidence: specific quote from the document or "Not Found"
- risk_level: "Critical", "High", "Medium", or "Low"
- recommendation: specific actionable suggestion to protect the client

Return response in valid JSON only. No markdown, no extra text.`)
	return b.String()
}

// BuildUserPrompt embeds the extracted document text, the table digest, and
// the project timeline, and pins the exact response shape.
func BuildUserPrompt(req AnalyzeRequest) string {
	text := truncateRunes(req.DocumentText, MaxPromptChars)

	tablesInfo := "No tables extracted"
	if req.TableCount > 0 {
		tablesInfo = fmt.Sprintf("%d tables found (inlined above as [TABLE n] blocks)", req.TableCount)
	}

	var b strings.Builder
	b.WriteString("Analyze this SOW document for a divestment project:\n\n")
	b.WriteString("PROJECT TIMELINE (Hard Deadlines):\n")
	b.WriteString("- Project: " + req.Timeline.ProjectName + "\n")
	b.WriteString("- Build Phase End: " + req.Timeline.BuildEnd.Format(dateLayout) + "\n")
	b.WriteString("- Test Phase End: " + req.Timeline.TestEnd.Format(dateLayout) + "\n")
	b.WriteString("- Cutover Phase End: " + req.Timeline.CutoverEnd.Format(dateLayout) + "\n\n")
	b.WriteString(fmt.Sprintf("SOW DOCUMENT TEXT (first %d chars):\n", MaxPromptChars))
	b.WriteString(text)
	b.WriteString("\n\nEXTRACTED TABLES: " + tablesInfo + "\n\n")
	b.WriteString("ANALYZE AGAINST ALL " + fmt.Sprint(constants.NumPillars) + " MANDATORY PILLARS.\n\n")
	b.WriteString(`RESPONSE FORMAT (valid JSON):
{
  "executive_summary": "3-sentence overview of SOW quality and findings",
  "go_no_go": "Go" or "No-Go",
  "pillars": [
    {
      "name": "Pricing Model",
      "status": "Met" | "Partial" | "Not Met",
      "risk_level": "Critical" | "High" | "Medium" | "Low",
      "evidence": "specific quote or finding from document",
      "recommendation": "actionable suggestion to protect the client"
    }
    ... one entry per pillar, all ` + fmt.Sprint(constants.NumPillars) + `
  ],
  "critical_risks": ["Risk 1: description", ...],
  "actionable_redlines": ["Redline 1: change X to Y because...", ...]
}

CRITICAL: Return ONLY valid JSON. No markdown. No extra text.`)
	return b.String()
}

// BuildSummarySystemPrompt frames the model as a contract analyst producing
// an executive-ready content digest.
func BuildSummarySystemPrompt() string {
	return "You are a senior contract analyst specializing in Statement of Work (SOW) documents for IT divestment projects. " +
		"Create a comprehensive, well-structured summary of SOW content that executives and stakeholders can quickly understand. " +
		"Use clear professional language, emphasize key numbers and dates, and return valid JSON only."
}

// BuildSummaryUserPrompt asks for the structured content summary sections.
func BuildSummaryUserPrompt(documentText string, tableCount int) string {
	text := truncateRunes(documentText, 20000)
	tablesInfo := ""
	if tableCount > 0 {
		tablesInfo = fmt.Sprintf("\n\nEXTRACTED TABLES: %d (inlined above as [TABLE n] blocks)", tableCount)
	}
	return fmt.Sprintf(`Analyze this Statement of Work (SOW) document and create a comprehensive content summary.

SOW DOCUMENT TEXT:
%s%s

Generate a structured JSON summary with these fields:
"overview" (2-3 paragraphs: what the SOW is about, the parties, the work, why it matters),
"key_sections" (5-8 major sections with brief descriptions),
"scope_highlights" (4-6 most important scope items),
"deliverables" (key deliverables with descriptions),
"timeline_overview" (paragraph: start/end dates, phases, milestones),
"cost_structure" (paragraph: total cost, payment terms, breakdown approach),
"parties_involved" (object: vendor_name, client_name, vendor_role, client_role),
"special_terms" (3-5 notable terms or constraints),
"technology_stack" (technologies/systems mentioned),
"assumptions_constraints" (key assumptions or constraints).

CRITICAL: Return ONLY valid JSON. No markdown. No extra text.`, text, tablesInfo)
}

// BuildRedlinePrompt asks for clause-level redline suggestions for one pillar.
func BuildRedlinePrompt(pillar, clause string) string {
	return fmt.Sprintf(`As an IT contracts expert acting for the divesting client, provide redline suggestions for this clause:

PILLAR: %s
CURRENT TEXT: %q

Provide 2-3 specific redline suggestions to protect the client's interests in this divestment project.

Format as JSON:
{
  "suggestions": [
    {"original": "text to replace", "redlined": "improved text", "reason": "why this protects the client"}
  ]
}`, pillar, clause)
}
