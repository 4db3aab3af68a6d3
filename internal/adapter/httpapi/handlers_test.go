package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"design-eval/internal/domain/entity"
	"design-eval/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapture struct {
	capture *entity.PageCapture
	err     error
}

func (f *fakeCapture) Capture(_ context.Context, _ string) (*entity.PageCapture, error) {
	return f.capture, f.err
}

func (f *fakeCapture) CaptureFullPage(ctx context.Context, url string) (*entity.PageCapture, error) {
	return f.Capture(ctx, url)
}

type fakeEvaluator struct {
	result *entity.EvaluationResult
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ string, _ *entity.PageCapture) *entity.EvaluationResult {
	return f.result
}

type fakeStorage struct {
	url string
	err error
}

func (f *fakeStorage) UploadScreenshot(_ context.Context, _ []byte, _ string) (string, error) {
	return f.url, f.err
}

func (f *fakeStorage) UploadImage(_ context.Context, _ []byte, _, _ string) (string, error) {
	return f.url, f.err
}

type fakeReport struct{}

func (f *fakeReport) Render(_ *entity.EvaluationResult, _ *entity.Screenshot, _ string) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

func goodResult() *entity.EvaluationResult {
	return &entity.EvaluationResult{
		TotalScore: 83.3,
		Grade:      entity.GradeGood,
		Categories: map[entity.Category]entity.CategoryScore{
			entity.CategoryTypography: {Score: 85, Weight: 0.25},
			entity.CategoryColor:      {Score: 48, Weight: 0.25},
			entity.CategoryLayout:     {Score: 100, Weight: 0.25},
			entity.CategoryUsability:  {Score: 100, Weight: 0.25},
		},
		Recommendations: []string{"Refine the color palette"},
	}
}

func testServer(capture *fakeCapture, storage *fakeStorage) *Server {
	s := &Server{
		capture:   capture,
		evaluator: &fakeEvaluator{result: goodResult()},
		report:    &fakeReport{},
		logger:    logger.NewNop(),
	}
	// A typed nil in the interface would defeat the nil checks.
	if storage != nil {
		s.storage = storage
	}
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleEvaluate_RejectsInvalidURLs(t *testing.T) {
	s := testServer(&fakeCapture{}, nil)

	cases := []string{"", "ftp://example.com", "not a url", "/relative/path"}
	for _, raw := range cases {
		rec := postJSON(t, s.handleEvaluate, EvaluationRequest{URL: raw})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "url %q must be rejected", raw)
	}
}

func TestHandleEvaluate_HappyPath(t *testing.T) {
	capture := &fakeCapture{capture: &entity.PageCapture{
		URL:        "https://example.com",
		Screenshot: &entity.Screenshot{Data: []byte{1, 2, 3}, Format: "png"},
	}}
	storage := &fakeStorage{url: "https://files.example/shot.png"}
	s := testServer(capture, storage)

	rec := postJSON(t, s.handleEvaluate, EvaluationRequest{URL: "https://example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 83.3, resp.TotalScore)
	assert.Equal(t, "Good", resp.Grade)
	assert.Len(t, resp.Categories, 4)
	assert.Equal(t, "https://files.example/shot.png", resp.ScreenshotURL)
}

func TestHandleEvaluate_CaptureFailureStillEvaluates(t *testing.T) {
	s := testServer(&fakeCapture{err: errors.New("browser crashed")}, nil)

	rec := postJSON(t, s.handleEvaluate, EvaluationRequest{URL: "https://example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 83.3, resp.TotalScore)
	assert.Empty(t, resp.ScreenshotURL)
}

func TestHandleEvaluate_ClientScreenshotURLWins(t *testing.T) {
	capture := &fakeCapture{capture: &entity.PageCapture{
		Screenshot: &entity.Screenshot{Data: []byte{1}},
	}}
	s := testServer(capture, &fakeStorage{url: "https://files.example/hosted.png"})

	rec := postJSON(t, s.handleEvaluate, EvaluationRequest{
		URL:           "https://example.com",
		ScreenshotURL: "https://client.example/own.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://client.example/own.png", resp.ScreenshotURL)
}

func TestHandleReport_ReturnsPDF(t *testing.T) {
	s := testServer(&fakeCapture{}, nil)

	rec := postJSON(t, s.handleReport, EvaluationRequest{URL: "https://example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestHandleUploadScreenshot(t *testing.T) {
	s := testServer(&fakeCapture{}, &fakeStorage{url: "https://files.example/up.png"})

	rec := postJSON(t, s.handleUploadScreenshot, ScreenshotUploadRequest{
		ImageBase64: "data:image/png;base64,AQID",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScreenshotUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://files.example/up.png", resp.URL)
}

func TestHandleUploadScreenshot_WithoutStorage(t *testing.T) {
	s := testServer(&fakeCapture{}, nil)

	rec := postJSON(t, s.handleUploadScreenshot, ScreenshotUploadRequest{ImageBase64: "AQID"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleUploadScreenshot_RejectsBadBase64(t *testing.T) {
	s := testServer(&fakeCapture{}, &fakeStorage{url: "x"})

	rec := postJSON(t, s.handleUploadScreenshot, ScreenshotUploadRequest{ImageBase64: "not base64!!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth_DegradedWithoutStorage(t *testing.T) {
	s := testServer(&fakeCapture{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	var resp struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.Services["storage"])
	assert.True(t, resp.Services["evaluator"])
}

func TestRouter_RootAndHealthRoutes(t *testing.T) {
	s := testServer(&fakeCapture{}, nil)
	router := s.Router()

	for _, path := range []string{"/", "/health", "/sheets-url", "/evaluations"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestDecodeDataURL(t *testing.T) {
	payload, mimeType, err := decodeDataURL("data:image/jpeg;base64,AQID")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, payload)
	assert.Equal(t, "image/jpeg", mimeType)

	payload, mimeType, err = decodeDataURL("AQID")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, payload)
	assert.Equal(t, "image/png", mimeType)

	_, _, err = decodeDataURL("data:image/png,rawdata")
	assert.Error(t, err)
}
