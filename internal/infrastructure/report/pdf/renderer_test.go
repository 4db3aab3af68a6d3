package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"design-eval/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *entity.EvaluationResult {
	return &entity.EvaluationResult{
		TotalScore: 85.8,
		Grade:      entity.GradeExcellent,
		Categories: map[entity.Category]entity.CategoryScore{
			entity.CategoryTypography: {Score: 90, Weight: 0.25, Reasoning: "clear hierarchy"},
			entity.CategoryColor:      {Score: 85, Weight: 0.25},
			entity.CategoryLayout:     {Score: 80, Weight: 0.25},
			entity.CategoryUsability:  {Score: 88, Weight: 0.25},
		},
		Recommendations: []string{"Improve contrast", "Tighten spacing"},
	}
}

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender_WithScreenshot(t *testing.T) {
	shot := &entity.Screenshot{
		Data:   samplePNG(t, 120, 80),
		Format: "png",
		Width:  120,
		Height: 80,
	}

	data, err := NewRenderer().Render(sampleResult(), shot, "https://example.com")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(data), 1000)
}

func TestRender_WithoutScreenshot(t *testing.T) {
	data, err := NewRenderer().Render(sampleResult(), nil, "https://example.com")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRender_EmptyRecommendations(t *testing.T) {
	result := sampleResult()
	result.Recommendations = nil

	data, err := NewRenderer().Render(result, nil, "https://example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
