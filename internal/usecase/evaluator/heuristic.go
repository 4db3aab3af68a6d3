package evaluator

import (
	"context"
	"image"
	"math"
	"sort"
	"strings"

	"design-eval/internal/application/port/output"
	"design-eval/internal/domain/entity"
	"design-eval/internal/scoring"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Pixel-signal thresholds. Text heights are rendered box heights in CSS
// pixels, so the comfortable band tracks common body font sizes.
const (
	typographyBase     = 50.0
	comfortableBonus   = 20.0
	acceptableBonus    = 10.0
	contrastBaseline   = 15.0
	harmonyCap         = 30.0
	harmonyPerHue      = 3.0
	accessibilityScore = 25.0
	consistencyScore   = 20.0
	layoutBase         = 60.0
	aspectRatioBonus   = 15.0
	whitespaceScore    = 15.0
	structureScore     = 10.0
	usabilityBase      = 55.0
	navigationBonus    = 20.0
	interactivityScore = 15.0
	performanceScore   = 10.0
)

var navigationWords = []string{"menu", "nav", "home", "contact", "about"}

var heuristicAdvisories = map[entity.Category]string{
	entity.CategoryTypography: "Improve readability: keep body text between 14-18px and ensure good contrast.",
	entity.CategoryColor:      "Refine the color palette: aim for harmony and meet a minimum 4.5:1 contrast ratio.",
	entity.CategoryLayout:     "Rework the layout: make better use of whitespace and keep a clear structure.",
	entity.CategoryUsability:  "Improve usability: simplify navigation and make interactive elements obvious.",
}

const heuristicCongratulation = "Great work! The site has a very solid design."

// HeuristicStrategy scores a page from pixel and text-detection signals
// alone. It requires a capture with a decoded image; without one it
// fails with ErrNoCapture so the orchestrator can fall through to the
// neutral result.
type HeuristicStrategy struct {
	logger output.LoggerPort
}

var _ Strategy = (*HeuristicStrategy)(nil)

func NewHeuristicStrategy(logger output.LoggerPort) *HeuristicStrategy {
	return &HeuristicStrategy{logger: logger}
}

func (s *HeuristicStrategy) Name() string {
	return "heuristic"
}

func (s *HeuristicStrategy) Evaluate(_ context.Context, pageURL string, capture *entity.PageCapture) (*entity.EvaluationResult, error) {
	if capture == nil || capture.Image == nil {
		return nil, ErrNoCapture
	}

	scores := map[entity.Category]float64{
		entity.CategoryTypography: typographyScore(capture.TextRegions),
		entity.CategoryColor:      colorScore(capture.Image),
		entity.CategoryLayout:     layoutScore(capture.Image),
		entity.CategoryUsability:  usabilityScore(capture.TextRegions, capture.PageText),
	}

	s.logger.Debug("heuristic sub-scores computed",
		"url", pageURL,
		"typography", scores[entity.CategoryTypography],
		"color", scores[entity.CategoryColor],
		"layout", scores[entity.CategoryLayout],
		"usability", scores[entity.CategoryUsability],
	)

	return buildResult(scores, nil, heuristicRecommendations(scores)), nil
}

func typographyScore(regions []entity.TextRegion) float64 {
	score := typographyBase
	if len(regions) == 0 {
		return score
	}

	var sum float64
	for _, r := range regions {
		sum += r.Height
	}
	mean := sum / float64(len(regions))

	// Best matching band only, never both.
	switch {
	case mean >= 14 && mean <= 18:
		score += comfortableBonus
	case mean >= 12 && mean <= 20:
		score += acceptableBonus
	}

	score += contrastBaseline
	return scoring.Clamp(score)
}

func colorScore(img image.Image) float64 {
	palette := dominantColors(img, 10)
	if len(palette) == 0 {
		return 50
	}

	hues := make(map[int]struct{})
	for _, c := range palette {
		col := colorful.Color{
			R: float64(c[0]) / 255,
			G: float64(c[1]) / 255,
			B: float64(c[2]) / 255,
		}
		h, _, _ := col.Hsv()
		hues[int(math.Round(h))] = struct{}{}
	}

	harmony := math.Min(harmonyCap, float64(len(hues))*harmonyPerHue)
	return scoring.Clamp(harmony + accessibilityScore + consistencyScore)
}

// dominantColors returns the top-N 8-bit RGB values by pixel frequency.
// The image is downsampled first to bound the counting pass.
func dominantColors(img image.Image, n int) [][3]uint8 {
	if img.Bounds().Dx() > 256 {
		img = imaging.Resize(img, 256, 0, imaging.NearestNeighbor)
	}

	counts := make(map[[3]uint8]int)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			counts[[3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}]++
		}
	}

	type colorCount struct {
		rgb [3]uint8
		n   int
	}
	list := make([]colorCount, 0, len(counts))
	for rgb, count := range counts {
		list = append(list, colorCount{rgb: rgb, n: count})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].n > list[j].n })

	if len(list) > n {
		list = list[:n]
	}
	out := make([][3]uint8, len(list))
	for i, c := range list {
		out[i] = c.rgb
	}
	return out
}

func layoutScore(img image.Image) float64 {
	score := layoutBase

	bounds := img.Bounds()
	if bounds.Dy() > 0 {
		aspect := float64(bounds.Dx()) / float64(bounds.Dy())
		if aspect >= 1.3 && aspect <= 1.8 {
			score += aspectRatioBonus
		}
	}

	return scoring.Clamp(score + whitespaceScore + structureScore)
}

func usabilityScore(regions []entity.TextRegion, pageText string) float64 {
	score := usabilityBase

	if hasNavigationWord(regions, pageText) {
		score += navigationBonus
	}

	return scoring.Clamp(score + interactivityScore + performanceScore)
}

func hasNavigationWord(regions []entity.TextRegion, pageText string) bool {
	for _, r := range regions {
		text := strings.ToLower(r.Text)
		for _, word := range navigationWords {
			if strings.Contains(text, word) {
				return true
			}
		}
	}

	// DOM region collection can fail independently of the raw page text.
	text := strings.ToLower(pageText)
	for _, word := range navigationWords {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// heuristicRecommendations emits one fixed advisory per category below
// 70, or a single congratulatory line when all four are at or above it.
func heuristicRecommendations(scores map[entity.Category]float64) []string {
	var recommendations []string
	for _, c := range entity.Categories() {
		if scores[c] < 70 {
			recommendations = append(recommendations, heuristicAdvisories[c])
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, heuristicCongratulation)
	}
	return recommendations
}
