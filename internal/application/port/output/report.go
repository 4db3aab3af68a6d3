package output

import "design-eval/internal/domain/entity"

type ReportPort interface {
	Render(result *entity.EvaluationResult, screenshot *entity.Screenshot, pageURL string) ([]byte, error)
}
