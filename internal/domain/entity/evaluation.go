package entity

type Category string

const (
	CategoryTypography Category = "typography"
	CategoryColor      Category = "color"
	CategoryLayout     Category = "layout"
	CategoryUsability  Category = "usability"
)

// Categories returns the fixed evaluation dimensions in report order.
func Categories() []Category {
	return []Category{CategoryTypography, CategoryColor, CategoryLayout, CategoryUsability}
}

type Grade string

const (
	GradeExcellent        Grade = "Excellent"
	GradeGood             Grade = "Good"
	GradeFair             Grade = "Fair"
	GradeNeedsImprovement Grade = "Needs-improvement"
)

type CategoryScore struct {
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// EvaluationResult is immutable once constructed. TotalScore is the
// weighted sum of the category scores rounded to one decimal, and Grade
// is derived from TotalScore via the scoring policy.
type EvaluationResult struct {
	TotalScore      float64                    `json:"total_score"`
	Grade           Grade                      `json:"grade"`
	Categories      map[Category]CategoryScore `json:"categories"`
	Recommendations []string                   `json:"recommendations"`
}
