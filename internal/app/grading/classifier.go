// Package grading implements the grade classification and GPA aggregation
// rules. All functions are pure; the same inputs always produce
// byte-identical outputs, which the rankboard ranking depends on.
package grading

// Grade is a letter grade on the institutional absolute scale.
type Grade string

const (
	GradeO     Grade = "O"
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeP     Grade = "P"
	GradeF     Grade = "F"
)

// ScaleVersion identifies the classification table below. Persisted grade
// points always win over derived ones, so bumping the table never rewrites
// history.
const ScaleVersion = "ggsipu-2021"

type gradeBand struct {
	MinScore   float64 // Inclusive lower bound; the threshold belongs to the higher band.
	Grade      Grade
	GradePoint float64
}

// scale is ordered best to worst. Bands are closed on their lower bound and
// jointly cover the whole [0,100] range with no gaps or overlaps.
var scale = []gradeBand{
	{90, GradeO, 10},
	{75, GradeAPlus, 9},
	{65, GradeA, 8},
	{55, GradeBPlus, 7},
	{50, GradeB, 6},
	{45, GradeC, 5},
	{40, GradeP, 4},
	{0, GradeF, 0},
}

// CanonicalOrder is the fixed best-to-worst grade ordering used whenever
// grades are rendered, regardless of insertion order or counts.
var CanonicalOrder = []Grade{GradeO, GradeAPlus, GradeA, GradeBPlus, GradeB, GradeC, GradeP, GradeF}

// Classify maps a total score to its letter grade and grade point.
// Out-of-range inputs are clamped to the nearest valid boundary; the
// function never fails.
func Classify(totalScore float64) (Grade, float64) {
	score := clamp(totalScore, 0, MaxScore)
	for _, band := range scale {
		if score >= band.MinScore {
			return band.Grade, band.GradePoint
		}
	}
	// Unreachable: the last band's lower bound is 0 and score is clamped.
	return GradeF, 0
}

// MaxScore is the upper bound of the classifier's input domain.
const MaxScore = 100

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
