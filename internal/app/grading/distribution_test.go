package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

func gradedSubject(grade string) models.Subject {
	return models.Subject{Grade: &grade}
}

func TestDistribution_CountsResolvedGrades(t *testing.T) {
	counts := Distribution([]models.Subject{
		gradedSubject("A"),
		gradedSubject("A"),
		gradedSubject("O"),
		{TotalMarks: 42}, // no persisted grade -> classified as P
	})
	assert.Equal(t, 2, counts[GradeA])
	assert.Equal(t, 1, counts[GradeO])
	assert.Equal(t, 1, counts[GradeP])
	assert.Equal(t, 0, counts[GradeF])
}

func TestOrderedDistribution_CanonicalOrder(t *testing.T) {
	// Insertion order is worst-first; rendering must still be best-to-worst.
	ordered := OrderedDistribution([]models.Subject{
		gradedSubject("F"),
		gradedSubject("P"),
		gradedSubject("A+"),
		gradedSubject("O"),
		gradedSubject("A+"),
	})
	assert.Equal(t, []GradeCount{
		{Grade: GradeO, Count: 1},
		{Grade: GradeAPlus, Count: 2},
		{Grade: GradeP, Count: 1},
		{Grade: GradeF, Count: 1},
	}, ordered)
}

func TestOrderedDistribution_Empty(t *testing.T) {
	assert.Empty(t, OrderedDistribution(nil))
}
