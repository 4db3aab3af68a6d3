package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"
	"design-eval/internal/infrastructure/prompts"
)

// LLMStrategy asks a language model for the four category scores and
// reasoning. The weighted total and grade are always computed locally so
// the aggregate stays consistent with the scoring policy regardless of
// model output.
type LLMStrategy struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

var _ Strategy = (*LLMStrategy)(nil)

func NewLLMStrategy(llm output.LLMPort, logger output.LoggerPort) *LLMStrategy {
	return &LLMStrategy{
		llm:    llm,
		logger: logger,
	}
}

func (s *LLMStrategy) Name() string {
	return "llm:" + s.llm.Name()
}

func (s *LLMStrategy) Evaluate(ctx context.Context, pageURL string, _ *entity.PageCapture) (*entity.EvaluationResult, error) {
	userPrompt, err := prompts.GenerateEvaluationPrompt(prompts.EvaluationPromptTemplate, pageURL)
	if err != nil {
		return nil, fmt.Errorf("prompt generation failed: %w", err)
	}

	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		System:      strings.TrimSpace(prompts.SystemPrompt),
		User:        userPrompt,
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	parsed, err := parseModelResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("llm response rejected: %w", err)
	}

	scores := map[entity.Category]float64{
		entity.CategoryTypography: parsed.Typography.Score,
		entity.CategoryColor:      parsed.Color.Score,
		entity.CategoryLayout:     parsed.Layout.Score,
		entity.CategoryUsability:  parsed.Usability.Score,
	}
	reasonings := map[entity.Category]string{
		entity.CategoryTypography: parsed.Typography.Reasoning,
		entity.CategoryColor:      parsed.Color.Reasoning,
		entity.CategoryLayout:     parsed.Layout.Reasoning,
		entity.CategoryUsability:  parsed.Usability.Reasoning,
	}

	return buildResult(scores, reasonings, parsed.Recommendations), nil
}

type modelCategory struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

type modelResponse struct {
	Typography      *modelCategory `json:"typography"`
	Color           *modelCategory `json:"color"`
	Layout          *modelCategory `json:"layout"`
	Usability       *modelCategory `json:"usability"`
	Recommendations []string       `json:"recommendations"`
}

// parseModelResponse strips a surrounding markdown code fence if present
// and parses the strict JSON shape. Missing categories, empty
// recommendations and out-of-range scores are hard failures; nothing is
// coerced.
func parseModelResponse(content string) (*modelResponse, error) {
	text := stripCodeFence(content)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	byName := map[entity.Category]*modelCategory{
		entity.CategoryTypography: parsed.Typography,
		entity.CategoryColor:      parsed.Color,
		entity.CategoryLayout:     parsed.Layout,
		entity.CategoryUsability:  parsed.Usability,
	}
	for _, c := range entity.Categories() {
		cat := byName[c]
		if cat == nil {
			return nil, fmt.Errorf("missing category %q", c)
		}
		if cat.Score < 0 || cat.Score > 100 {
			return nil, fmt.Errorf("category %q score %v out of range", c, cat.Score)
		}
	}
	if len(parsed.Recommendations) == 0 {
		return nil, fmt.Errorf("missing recommendations")
	}

	return &parsed, nil
}

func stripCodeFence(content string) string {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.IndexRune(text, '\n'); idx >= 0 {
			text = text[idx+1:]
		}
		if strings.HasSuffix(text, "```") {
			text = text[:len(text)-3]
		}
	}
	return strings.TrimSpace(text)
}
