// Package scoring holds the fixed scoring policy: category weights and
// grade thresholds. Both evaluation strategies and the orchestrator
// compute aggregates through this package so the formula cannot drift
// between them.
package scoring

import (
	"math"

	"design-eval/internal/domain/entity"
)

// weights must sum to 1.0.
var weights = map[entity.Category]float64{
	entity.CategoryTypography: 0.25,
	entity.CategoryColor:      0.25,
	entity.CategoryLayout:     0.25,
	entity.CategoryUsability:  0.25,
}

const (
	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 50
)

func Weight(c entity.Category) float64 {
	return weights[c]
}

func Weights() map[entity.Category]float64 {
	out := make(map[entity.Category]float64, len(weights))
	for c, w := range weights {
		out[c] = w
	}
	return out
}

// WeightedTotal returns the weighted sum of the four category scores,
// rounded to one decimal.
func WeightedTotal(scores map[entity.Category]float64) float64 {
	var total float64
	for c, w := range weights {
		total += scores[c] * w
	}
	return Round1(total)
}

// GradeFor maps a total score to its grade band. Band lower bounds are
// inclusive.
func GradeFor(total float64) entity.Grade {
	switch {
	case total >= excellentThreshold:
		return entity.GradeExcellent
	case total >= goodThreshold:
		return entity.GradeGood
	case total >= fairThreshold:
		return entity.GradeFair
	default:
		return entity.GradeNeedsImprovement
	}
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
