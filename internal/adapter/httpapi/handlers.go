package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"design-eval/internal/domain/entity"
)

const sheetLogTimeout = 15 * time.Second

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatePageURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	// Capture is best effort. A broken browser or an unreachable page
	// still yields an evaluation, just one without visual evidence.
	capture, err := s.capture.Capture(ctx, req.URL)
	if err != nil {
		s.logger.Warn("page capture failed, evaluating without screenshot",
			"url", req.URL,
			"error", err,
		)
		capture = nil
	}

	screenshotURL := ""
	if capture != nil && capture.Screenshot != nil && s.storage != nil {
		uploaded, uploadErr := s.storage.UploadScreenshot(ctx, capture.Screenshot.Data, req.URL)
		if uploadErr != nil {
			s.logger.Warn("screenshot upload failed", "url", req.URL, "error", uploadErr)
		} else {
			screenshotURL = uploaded
		}
	}

	result := s.evaluator.Evaluate(ctx, req.URL, capture)

	// A client-supplied screenshot URL wins over the one we hosted, so
	// extension users keep control of what the spreadsheet links to.
	if req.ScreenshotURL != "" {
		screenshotURL = req.ScreenshotURL
	}

	if s.sheets != nil {
		go s.logEvaluation(req.URL, result, screenshotURL)
	}

	writeJSON(w, http.StatusOK, EvaluationResponse{
		URL:             req.URL,
		TotalScore:      result.TotalScore,
		Grade:           string(result.Grade),
		Categories:      result.Categories,
		Recommendations: result.Recommendations,
		ScreenshotURL:   screenshotURL,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatePageURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	capture, err := s.capture.Capture(ctx, req.URL)
	if err != nil {
		s.logger.Warn("page capture failed, report will have no screenshot",
			"url", req.URL,
			"error", err,
		)
		capture = nil
	}

	result := s.evaluator.Evaluate(ctx, req.URL, capture)

	var screenshot *entity.Screenshot
	if capture != nil {
		screenshot = capture.Screenshot
	}

	data, err := s.report.Render(result, screenshot, req.URL)
	if err != nil {
		s.logger.Error("report rendering failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="design-evaluation-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleUploadScreenshot(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, ScreenshotUploadResponse{
			Success: false,
			Error:   "storage is not configured",
		})
		return
	}

	var req ScreenshotUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}

	payload, mimeType, err := decodeDataURL(req.ImageBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = fmt.Sprintf("upload_%s.png", time.Now().Format("20060102_150405"))
	}

	uploadedURL, err := s.storage.UploadImage(r.Context(), payload, filename, mimeType)
	if err != nil {
		s.logger.Error("manual screenshot upload failed", "filename", filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, ScreenshotUploadResponse{
			Success: false,
			Error:   "upload failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, ScreenshotUploadResponse{Success: true, URL: uploadedURL})
}

// handleEvaluations exists for dashboard compatibility. Rows live in
// the spreadsheet; the service itself keeps no history.
func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	sheetURL := ""
	if s.sheets != nil {
		sheetURL = s.sheets.SheetURL()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"evaluations": []any{},
		"message":     "evaluation history is stored in the spreadsheet",
		"sheets_url":  sheetURL,
	})
}

func (s *Server) handleSheetsURL(w http.ResponseWriter, r *http.Request) {
	sheetURL := ""
	if s.sheets != nil {
		sheetURL = s.sheets.SheetURL()
	}
	writeJSON(w, http.StatusOK, map[string]string{"sheets_url": sheetURL})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]bool{
		"screenshot_capture": s.capture != nil,
		"evaluator":          s.evaluator != nil,
		"storage":            s.storage != nil,
		"sheet_logger":       s.sheets != nil,
	}

	status := "healthy"
	for _, ok := range services {
		if !ok {
			status = "degraded"
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"services": services,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Web Design Evaluation Service",
		"status":  "active",
	})
}

// logEvaluation runs detached from the request so a slow spreadsheet
// never delays the evaluation response.
func (s *Server) logEvaluation(pageURL string, result *entity.EvaluationResult, screenshotURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), sheetLogTimeout)
	defer cancel()

	if err := s.sheets.AppendEvaluation(ctx, pageURL, result, screenshotURL); err != nil {
		s.logger.Warn("spreadsheet logging failed", "url", pageURL, "error", err)
	}
}

func validatePageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url is not valid: %v", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("url must be absolute with http or https scheme")
	}
	return nil
}

func decodeDataURL(raw string) ([]byte, string, error) {
	mimeType := "image/png"
	encoded := raw

	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ";base64,")
		if idx < 0 {
			return nil, "", fmt.Errorf("image_base64 must be base64 encoded")
		}
		mimeType = raw[len("data:"):idx]
		encoded = raw[idx+len(";base64,"):]
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("image_base64 is not valid base64")
	}
	return payload, mimeType, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
