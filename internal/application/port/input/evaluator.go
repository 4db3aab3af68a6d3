package input

import (
	"context"

	"design-eval/internal/domain/entity"
)

// DesignEvaluator scores the visual design of a page. It never fails:
// strategy errors degrade to the next strategy and finally to a neutral
// result, so the returned value is always structurally valid.
type DesignEvaluator interface {
	Evaluate(ctx context.Context, pageURL string, capture *entity.PageCapture) *entity.EvaluationResult
}
