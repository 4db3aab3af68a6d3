package httpapi

import "design-eval/internal/domain/entity"

type EvaluationRequest struct {
	URL           string `json:"url"`
	ScreenshotURL string `json:"screenshot_url,omitempty"`
}

type EvaluationResponse struct {
	URL             string                                  `json:"url"`
	TotalScore      float64                                 `json:"total_score"`
	Grade           string                                  `json:"grade"`
	Categories      map[entity.Category]entity.CategoryScore `json:"categories"`
	Recommendations []string                                `json:"recommendations"`
	ScreenshotURL   string                                  `json:"screenshot_url,omitempty"`
}

type ScreenshotUploadRequest struct {
	ImageBase64 string `json:"image_base64"`
	Filename    string `json:"filename,omitempty"`
}

type ScreenshotUploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}
