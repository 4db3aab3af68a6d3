package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
)

var _ output.ReportPort = (*Renderer)(nil)

const (
	maxImageWidth  = 170.0 // mm
	maxImageHeight = 100.0 // mm
)

// Renderer produces the PDF evaluation report: header, overall score,
// screenshot, category breakdown table and recommendations.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(result *entity.EvaluationResult, screenshot *entity.Screenshot, pageURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Web Design Evaluation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Evaluated URL: %s", pageURL), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Evaluation date: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	r.sectionTitle(pdf, "Overall Score")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("%.1f/100 - %s", result.TotalScore, result.Grade), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if screenshot != nil && len(screenshot.Data) > 0 {
		r.sectionTitle(pdf, "Screenshot")
		r.embedScreenshot(pdf, screenshot)
		pdf.Ln(4)
	}

	r.sectionTitle(pdf, "Category Breakdown")
	r.categoryTable(pdf, result)
	pdf.Ln(6)

	r.sectionTitle(pdf, "Recommendations")
	pdf.SetFont("Helvetica", "", 11)
	for _, rec := range result.Recommendations {
		pdf.MultiCell(0, 6, "- "+rec, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated by the Web Design Evaluation Service", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) categoryTable(pdf *gofpdf.Fpdf, result *entity.EvaluationResult) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(90, 90, 90)
	pdf.SetTextColor(255, 255, 255)
	for _, header := range []string{"Category", "Score", "Weight", "Contribution"} {
		pdf.CellFormat(45, 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 220)
	for _, c := range entity.Categories() {
		score := result.Categories[c]
		pdf.CellFormat(45, 8, titleCase(string(c)), "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 8, fmt.Sprintf("%.1f/100", score.Score), "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 8, fmt.Sprintf("%.0f%%", score.Weight*100), "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 8, fmt.Sprintf("%.1f", score.Score*score.Weight), "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}
}

func (r *Renderer) embedScreenshot(pdf *gofpdf.Fpdf, shot *entity.Screenshot) {
	imageType := "PNG"
	if shot.Format == "jpeg" || shot.Format == "jpg" {
		imageType = "JPG"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("screenshot", opts, bytes.NewReader(shot.Data))

	width := float64(shot.Width)
	height := float64(shot.Height)
	if width <= 0 || height <= 0 {
		return
	}
	// mm at ~96 dpi, then fit to the frame keeping aspect.
	width, height = width*0.2646, height*0.2646
	ratio := math.Min(maxImageWidth/width, maxImageHeight/height)
	if ratio > 1 {
		ratio = 1
	}

	pdf.ImageOptions("screenshot", 20, 0, width*ratio, 0, true, opts, 0, "")
	pdf.Ln(2)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
