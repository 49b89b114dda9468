package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		score float64
		grade Grade
		point float64
	}{
		{100, GradeO, 10},
		{90, GradeO, 10}, // Threshold belongs to the higher band
		{89.99, GradeAPlus, 9},
		{75, GradeAPlus, 9},
		{74.5, GradeA, 8},
		{65, GradeA, 8},
		{64, GradeBPlus, 7},
		{55, GradeBPlus, 7},
		{54, GradeB, 6},
		{50, GradeB, 6},
		{49, GradeC, 5},
		{45, GradeC, 5},
		{44, GradeP, 4},
		{40, GradeP, 4},
		{39.99, GradeF, 0},
		{0, GradeF, 0},
	}
	for _, c := range cases {
		grade, point := Classify(c.score)
		assert.Equal(t, c.grade, grade, "score %v", c.score)
		assert.Equal(t, c.point, point, "score %v", c.score)
	}
}

func TestClassify_ClampsOutOfRangeInputs(t *testing.T) {
	grade, point := Classify(-12)
	assert.Equal(t, GradeF, grade)
	assert.Equal(t, 0.0, point)

	grade, point = Classify(150)
	assert.Equal(t, GradeO, grade)
	assert.Equal(t, 10.0, point)
}

func TestClassify_MonotonicAndTotal(t *testing.T) {
	prev := -1.0
	for score := 0.0; score <= 100.0; score += 0.25 {
		_, point := Classify(score)
		assert.GreaterOrEqual(t, point, prev, "grade point regressed at score %v", score)
		prev = point
	}
}
