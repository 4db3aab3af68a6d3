package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"
	"design-eval/internal/infrastructure/browser/pagetext"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.CapturePort = (*CaptureAdapter)(nil)

// textSelector covers the elements whose rendered boxes approximate text
// size on the page.
const textSelector = "h1, h2, h3, h4, p, a, span, li, button, label"

const (
	maxTextRegions  = 400
	maxDecodedWidth = 1440
)

type Config struct {
	Headless   bool
	NoSandbox  bool
	Timeout    time.Duration
	SettleWait time.Duration
	Width      int
	Height     int
	Format     string // "png" or "jpeg"
	Quality    int    // jpeg only
}

func DefaultConfig() Config {
	return Config{
		Headless:   true,
		NoSandbox:  true,
		Timeout:    60 * time.Second,
		SettleWait: 3 * time.Second,
		Width:      1920,
		Height:     1080,
		Format:     "png",
		Quality:    80,
	}
}

// CaptureAdapter screenshots pages with a headless Chromium. A fresh
// browser is launched and released for every capture so a crashed page
// cannot poison later requests.
type CaptureAdapter struct {
	cfg    Config
	logger output.LoggerPort
}

func NewCaptureAdapter(cfg Config, logger output.LoggerPort) *CaptureAdapter {
	return &CaptureAdapter{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *CaptureAdapter) Capture(ctx context.Context, url string) (*entity.PageCapture, error) {
	return a.capture(ctx, url, false)
}

func (a *CaptureAdapter) CaptureFullPage(ctx context.Context, url string) (*entity.PageCapture, error) {
	return a.capture(ctx, url, true)
}

func (a *CaptureAdapter) capture(ctx context.Context, url string, fullPage bool) (*entity.PageCapture, error) {
	start := time.Now()

	l := launcher.New().
		Headless(a.cfg.Headless).
		NoSandbox(a.cfg.NoSandbox).
		Set("disable-gpu").
		Set("disable-extensions").
		Set("disable-dev-shm-usage")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page = page.Context(ctx).Timeout(a.cfg.Timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             a.cfg.Width,
		Height:            a.cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}
	page.WaitIdle(a.cfg.SettleWait)

	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
	if a.cfg.Format == "jpeg" {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		req.Quality = gson.Int(a.cfg.Quality)
	}
	imgBytes, err := page.Screenshot(fullPage, req)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	shot := &entity.Screenshot{
		Data:   imgBytes,
		Format: a.cfg.Format,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
	if img.Bounds().Dx() > maxDecodedWidth {
		img = imaging.Resize(img, maxDecodedWidth, 0, imaging.Lanczos)
	}

	regions, err := a.collectTextRegions(page)
	if err != nil {
		a.logger.Warn("text region collection failed", "url", url, "error", err)
		regions = nil
	}

	title, pageText := a.extractPageText(page)

	a.logger.Info("page captured",
		"url", url,
		"full_page", fullPage,
		"bytes", len(shot.Data),
		"text_regions", len(regions),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &entity.PageCapture{
		URL:         url,
		Title:       title,
		Screenshot:  shot,
		Image:       img,
		TextRegions: regions,
		PageText:    pageText,
		CapturedAt:  time.Now(),
	}, nil
}

func (a *CaptureAdapter) collectTextRegions(page *rod.Page) ([]entity.TextRegion, error) {
	elements, err := page.Elements(textSelector)
	if err != nil {
		return nil, fmt.Errorf("element query failed: %w", err)
	}

	var regions []entity.TextRegion
	for _, el := range elements {
		if len(regions) >= maxTextRegions {
			break
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}

		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		shape, err := el.Shape()
		if err != nil {
			continue
		}
		box := shape.Box()
		if box == nil || box.Height <= 0 {
			continue
		}

		regions = append(regions, entity.TextRegion{
			Text:   text,
			Width:  box.Width,
			Height: box.Height,
		})
	}
	return regions, nil
}

func (a *CaptureAdapter) extractPageText(page *rod.Page) (title, text string) {
	if info, err := page.Info(); err == nil {
		title = info.Title
	}
	if html, err := page.HTML(); err == nil {
		text = pagetext.Extract(html)
	}
	return title, text
}
