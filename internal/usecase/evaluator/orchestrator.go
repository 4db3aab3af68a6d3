package evaluator

import (
	"context"
	"errors"

	"design-eval/internal/application/port/input"
	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"
	"design-eval/internal/scoring"
)

// ErrNoCapture signals that a strategy needs a page capture and none was
// supplied. The orchestrator treats it like any other strategy failure.
var ErrNoCapture = errors.New("no page capture available")

type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, pageURL string, capture *entity.PageCapture) (*entity.EvaluationResult, error)
}

var _ input.DesignEvaluator = (*Orchestrator)(nil)

// Orchestrator tries strategies in order and falls back to a neutral
// result when all of them fail. Evaluate never returns an error.
type Orchestrator struct {
	strategies []Strategy
	logger     output.LoggerPort
}

func NewOrchestrator(logger output.LoggerPort, strategies ...Strategy) *Orchestrator {
	return &Orchestrator{
		strategies: strategies,
		logger:     logger,
	}
}

func (o *Orchestrator) Evaluate(ctx context.Context, pageURL string, capture *entity.PageCapture) *entity.EvaluationResult {
	for _, s := range o.strategies {
		result, err := s.Evaluate(ctx, pageURL, capture)
		if err != nil {
			o.logger.Warn("evaluation strategy failed",
				"strategy", s.Name(),
				"url", pageURL,
				"error", err,
			)
			continue
		}

		o.logger.Info("evaluation completed",
			"strategy", s.Name(),
			"url", pageURL,
			"total_score", result.TotalScore,
			"grade", result.Grade,
		)
		return result
	}

	o.logger.Warn("all evaluation strategies exhausted, returning neutral result", "url", pageURL)
	return NeutralResult()
}

const neutralRecommendation = "The page could not be fully analyzed. Verify the screenshot quality and try again."

// NeutralResult is the fixed last-resort evaluation: every category at
// 50.0 and a single generic recommendation.
func NeutralResult() *entity.EvaluationResult {
	categories := make(map[entity.Category]entity.CategoryScore, 4)
	for _, c := range entity.Categories() {
		categories[c] = entity.CategoryScore{Score: 50.0, Weight: scoring.Weight(c)}
	}
	return &entity.EvaluationResult{
		TotalScore:      50.0,
		Grade:           entity.GradeFair,
		Categories:      categories,
		Recommendations: []string{neutralRecommendation},
	}
}

// buildResult assembles a result from raw category scores, deriving the
// total and grade from the shared scoring policy.
func buildResult(scores map[entity.Category]float64, reasonings map[entity.Category]string, recommendations []string) *entity.EvaluationResult {
	categories := make(map[entity.Category]entity.CategoryScore, len(scores))
	for c, s := range scores {
		categories[c] = entity.CategoryScore{
			Score:     scoring.Round1(s),
			Weight:    scoring.Weight(c),
			Reasoning: reasonings[c],
		}
	}

	total := scoring.WeightedTotal(scores)
	return &entity.EvaluationResult{
		TotalScore:      total,
		Grade:           scoring.GradeFor(total),
		Categories:      categories,
		Recommendations: recommendations,
	}
}
