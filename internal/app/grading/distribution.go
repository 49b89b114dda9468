package grading

import (
	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// GradeCount is one histogram bucket.
type GradeCount struct {
	Grade Grade `json:"grade"`
	Count int   `json:"count"`
}

// Distribution tallies letter-grade frequencies across a subject set,
// preferring each subject's persisted grade over a freshly classified one.
func Distribution(subjects []models.Subject) map[Grade]int {
	counts := make(map[Grade]int, len(CanonicalOrder))
	for i := range subjects {
		counts[ResolveGrade(&subjects[i])]++
	}
	return counts
}

// OrderedDistribution renders a histogram in the fixed best-to-worst grade
// order, skipping grades with no occurrences.
func OrderedDistribution(subjects []models.Subject) []GradeCount {
	counts := Distribution(subjects)
	out := make([]GradeCount, 0, len(counts))
	for _, g := range CanonicalOrder {
		if n := counts[g]; n > 0 {
			out = append(out, GradeCount{Grade: g, Count: n})
		}
	}
	return out
}
