package scoring

import (
	"testing"

	"design-eval/internal/domain/entity"
)

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range Weights() {
		sum += w
	}
	if sum != 1.0 {
		t.Errorf("weights must sum to 1.0, got %f", sum)
	}
}

func TestWeightedTotal_RoundsToOneDecimal(t *testing.T) {
	scores := map[entity.Category]float64{
		entity.CategoryTypography: 90,
		entity.CategoryColor:      85,
		entity.CategoryLayout:     80,
		entity.CategoryUsability:  88,
	}

	// 0.25*(90+85+80+88) = 85.75, rounds to 85.8
	total := WeightedTotal(scores)
	if total != 85.8 {
		t.Errorf("expected total 85.8, got %f", total)
	}
	if GradeFor(total) != entity.GradeExcellent {
		t.Errorf("expected Excellent for %f, got %s", total, GradeFor(total))
	}
}

func TestGradeFor_BandBoundsAreInclusive(t *testing.T) {
	cases := []struct {
		total float64
		want  entity.Grade
	}{
		{100, entity.GradeExcellent},
		{85, entity.GradeExcellent},
		{84.9, entity.GradeGood},
		{70, entity.GradeGood},
		{69.9, entity.GradeFair},
		{50, entity.GradeFair},
		{49.9, entity.GradeNeedsImprovement},
		{0, entity.GradeNeedsImprovement},
	}

	for _, tc := range cases {
		if got := GradeFor(tc.total); got != tc.want {
			t.Errorf("GradeFor(%v) = %s, want %s", tc.total, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5) != 0 {
		t.Error("negative scores must clamp to 0")
	}
	if Clamp(120) != 100 {
		t.Error("scores above 100 must clamp to 100")
	}
	if Clamp(73.5) != 73.5 {
		t.Error("in-range scores must pass through unchanged")
	}
}
