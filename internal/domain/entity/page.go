package entity

import (
	"image"
	"time"
)

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// TextRegion is one visible text element with its rendered box size in
// CSS pixels.
type TextRegion struct {
	Text   string
	Width  float64
	Height float64
}

// PageCapture is everything the browser collaborator extracted from one
// page visit. Image is the decoded screenshot, possibly downscaled;
// Screenshot keeps the original encoded bytes for upload and reports.
type PageCapture struct {
	URL         string
	Title       string
	Screenshot  *Screenshot
	Image       image.Image
	TextRegions []TextRegion
	PageText    string
	CapturedAt  time.Time
}
