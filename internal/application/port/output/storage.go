package output

import (
	"context"

	"design-eval/internal/domain/entity"
)

// StoragePort uploads images to the remote file host and returns a
// public URL.
type StoragePort interface {
	UploadScreenshot(ctx context.Context, data []byte, pageURL string) (string, error)
	UploadImage(ctx context.Context, data []byte, filename, mimeType string) (string, error)
}

// SheetLogPort appends evaluation rows to the remote spreadsheet.
// Callers treat it as best-effort.
type SheetLogPort interface {
	AppendEvaluation(ctx context.Context, pageURL string, result *entity.EvaluationResult, screenshotURL string) error
	SheetURL() string
}
