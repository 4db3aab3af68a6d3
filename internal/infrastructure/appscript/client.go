// Package appscript talks to the Google Apps Script web endpoint that
// fronts both the file host and the evaluations spreadsheet. The script
// accepts a single POST shape and answers with a {success, url, error}
// envelope.
package appscript

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"

	"github.com/go-resty/resty/v2"
)

var (
	_ output.StoragePort  = (*Client)(nil)
	_ output.SheetLogPort = (*Client)(nil)
)

var ErrNotConfigured = errors.New("apps script endpoint not configured")

var domainPattern = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)

type Config struct {
	ScriptURL     string
	SpreadsheetID string
	UploadTimeout time.Duration
	LogTimeout    time.Duration
}

type Client struct {
	http          *resty.Client
	scriptURL     string
	spreadsheetID string
	logTimeout    time.Duration
	logger        output.LoggerPort
}

type scriptResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

type evaluationRow struct {
	Timestamp       string   `json:"timestamp"`
	URL             string   `json:"url"`
	TotalScore      float64  `json:"total_score"`
	Grade           string   `json:"grade"`
	TypographyScore float64  `json:"typography_score"`
	ColorScore      float64  `json:"color_score"`
	LayoutScore     float64  `json:"layout_score"`
	UsabilityScore  float64  `json:"usability_score"`
	ScreenshotURL   string   `json:"screenshot_url"`
	Recommendations []string `json:"recommendations"`
}

func New(cfg Config, logger output.LoggerPort) (*Client, error) {
	if cfg.ScriptURL == "" {
		return nil, ErrNotConfigured
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if cfg.LogTimeout <= 0 {
		cfg.LogTimeout = 10 * time.Second
	}

	return &Client{
		http:          resty.New().SetTimeout(cfg.UploadTimeout),
		scriptURL:     cfg.ScriptURL,
		spreadsheetID: cfg.SpreadsheetID,
		logTimeout:    cfg.LogTimeout,
		logger:        logger,
	}, nil
}

func (c *Client) UploadScreenshot(ctx context.Context, data []byte, pageURL string) (string, error) {
	return c.UploadImage(ctx, data, screenshotFilename(pageURL), "image/png")
}

func (c *Client) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	var result scriptResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"image_base64": dataURL}).
		SetResult(&result).
		Post(c.scriptURL)
	if err != nil {
		return "", fmt.Errorf("apps script upload failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("apps script upload status %d", resp.StatusCode())
	}
	if !result.Success {
		return "", fmt.Errorf("apps script rejected upload: %s", errorOrUnknown(result.Error))
	}
	if result.URL == "" {
		return "", errors.New("apps script returned success without a url")
	}

	c.logger.Info("screenshot uploaded",
		"filename", filename,
		"url", result.URL,
		"bytes", len(data),
	)
	return result.URL, nil
}

func (c *Client) AppendEvaluation(ctx context.Context, pageURL string, result *entity.EvaluationResult, screenshotURL string) error {
	ctx, cancel := context.WithTimeout(ctx, c.logTimeout)
	defer cancel()

	row := evaluationRow{
		Timestamp:       time.Now().Format(time.RFC3339),
		URL:             pageURL,
		TotalScore:      result.TotalScore,
		Grade:           string(result.Grade),
		TypographyScore: result.Categories[entity.CategoryTypography].Score,
		ColorScore:      result.Categories[entity.CategoryColor].Score,
		LayoutScore:     result.Categories[entity.CategoryLayout].Score,
		UsabilityScore:  result.Categories[entity.CategoryUsability].Score,
		ScreenshotURL:   screenshotURL,
		Recommendations: result.Recommendations,
	}

	var out scriptResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		SetResult(&out).
		Post(c.scriptURL)
	if err != nil {
		return fmt.Errorf("apps script log failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("apps script log status %d", resp.StatusCode())
	}
	if !out.Success {
		return fmt.Errorf("apps script rejected row: %s", errorOrUnknown(out.Error))
	}
	return nil
}

// SheetURL returns the public spreadsheet URL, or empty when only the
// write-only script endpoint is configured.
func (c *Client) SheetURL() string {
	if c.spreadsheetID == "" {
		return ""
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", c.spreadsheetID)
}

func screenshotFilename(pageURL string) string {
	domain := "unknown"
	if m := domainPattern.FindStringSubmatch(pageURL); m != nil {
		domain = m[1]
	}
	return fmt.Sprintf("screenshot_%s_%s.png", domain, time.Now().Format("20060102_150405"))
}

func errorOrUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
