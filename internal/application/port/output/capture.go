package output

import (
	"context"

	"design-eval/internal/domain/entity"
)

// CapturePort takes a screenshot of a page. Implementations own the
// browser lifecycle per call: create, navigate, capture, release.
type CapturePort interface {
	Capture(ctx context.Context, url string) (*entity.PageCapture, error)
	CaptureFullPage(ctx context.Context, url string) (*entity.PageCapture, error)
}
