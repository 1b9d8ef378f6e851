package deepseek

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/sow-auditor/constants"
	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/llm"
)

// Analyze implements llm.Analyzer over chat/completions. The content is
// stripped of code fences, sanitized, schema-validated, and decoded; any
// mismatch aborts the run with a parse error. No retries.
func (c *Client) Analyze(ctx context.Context, req llm.AnalyzeRequest) (*llm.Analysis, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.analyze.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.DocumentText),
		"tables", req.TableCount,
		"project", req.Timeline.ProjectName,
	)

	content, err := c.chat(ctx, rid,
		llm.BuildSystemPrompt(),
		llm.BuildUserPrompt(req),
		c.cfg.Temperature, c.cfg.MaxTokens)
	if err != nil {
		return nil, nil, err
	}

	rawContent := []byte(llm.StripCodeFences(content))

	schema := llm.BuildAnalysisJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		// One lenient pass: normalize synonym fields and re-validate.
		cleaned, dropped, sErr := llm.NormalizeAndSanitizeJSON(rawContent, c.logger)
		if sErr != nil {
			c.logger.Error("llm.analyze.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, rawContent, common.ParseError("analysis response is not valid JSON", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.logger.Error("llm.analyze.schema_validation_failed",
				"req_id", rid, "error", vErr, "content_len", len(rawContent),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, rawContent, common.ParseError("analysis response does not match expected structure", vErr)
		}
		c.logger.Warn("llm.analyze.lenient_sanitize_applied",
			"req_id", rid, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		rawContent = cleaned
	}

	var out llm.Analysis
	if err := json.Unmarshal(rawContent, &out); err != nil {
		c.logger.Error("llm.analyze.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, rawContent, common.ParseError("decode analysis", err)
	}
	out.Model = c.cfg.Model
	out.AnalyzedAt = time.Now()

	c.logger.Info("llm.analyze.ok",
		"req_id", rid,
		"pillars", len(out.Findings),
		"go_no_go", out.GoNoGo,
		"critical_risks", len(out.CriticalRisks),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, rawContent, nil
}

// Summarize produces the optional structured content digest. Parsed leniently;
// the digest is supplementary and no schema gate is applied.
func (c *Client) Summarize(ctx context.Context, documentText string, tableCount int) (*llm.ContentSummary, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.summary.start", "req_id", rid, "model", c.cfg.Model, "text_len", len(documentText))

	content, err := c.chat(ctx, rid,
		llm.BuildSummarySystemPrompt(),
		llm.BuildSummaryUserPrompt(documentText, tableCount),
		0.3, 3000)
	if err != nil {
		return nil, err
	}

	var out llm.ContentSummary
	if err := json.Unmarshal([]byte(llm.StripCodeFences(content)), &out); err != nil {
		c.logger.Error("llm.summary.unmarshal_failed", "req_id", rid, "error", err)
		return nil, common.ParseError("decode content summary", err)
	}

	c.logger.Info("llm.summary.ok", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
	return &out, nil
}

// SuggestRedlines asks for clause-level edits for one pillar.
func (c *Client) SuggestRedlines(ctx context.Context, pillar, clause string) ([]llm.RedlineSuggestion, error) {
	if _, ok := constants.CanonicalizePillar(pillar); !ok {
		return nil, common.InputError(fmt.Sprintf("unknown pillar %q", pillar), nil)
	}

	rid := uuid.New().String()
	c.logger.Info("llm.redline.start", "req_id", rid, "pillar", pillar, "clause_len", len(clause))

	content, err := c.chat(ctx, rid, "", llm.BuildRedlinePrompt(pillar, clause), 0.2, 1000)
	if err != nil {
		return nil, err
	}

	var out struct {
		Suggestions []llm.RedlineSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFences(content)), &out); err != nil {
		return nil, common.ParseError("decode redline suggestions", err)
	}
	c.logger.Info("llm.redline.ok", "req_id", rid, "suggestions", len(out.Suggestions))
	return out.Suggestions, nil
}

// chat performs one chat-completion round trip and returns the raw content.
func (c *Client) chat(ctx context.Context, rid, system, user string, temp float32, maxTokens int) (string, error) {
	start := time.Now()

	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: user,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: temp,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: messages,
	})
	if err != nil {
		c.logger.Error("llm.http.send_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NetworkError("analysis endpoint call failed", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.http.no_choices", "req_id", rid)
		return "", common.ParseError("no choices in analysis response", nil)
	}

	c.logger.Info("llm.http.response",
		"req_id", rid,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp.Choices[0].Message.Content, nil
}
