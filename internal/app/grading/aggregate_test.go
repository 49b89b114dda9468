package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

func subject(credits int, gradePoint float64) models.Subject {
	return models.Subject{Credits: credits, GradePoint: &gradePoint}
}

func TestAggregateTerm_Empty(t *testing.T) {
	agg := AggregateTerm(nil)
	assert.Equal(t, TermAggregate{}, agg)

	agg = AggregateTerm([]models.Subject{})
	assert.Equal(t, 0.0, agg.SGPA)
	assert.Equal(t, 0, agg.Credits)
}

func TestAggregateTerm_WeightedAverage(t *testing.T) {
	agg := AggregateTerm([]models.Subject{
		subject(4, 9),
		subject(3, 8),
		subject(3, 10),
	})
	// (4*9 + 3*8 + 3*10) / 10 = 9.00
	assert.Equal(t, 9.00, agg.SGPA)
	assert.Equal(t, 10, agg.Credits)
}

func TestAggregateTerm_ExcludesFailAndZeroCredit(t *testing.T) {
	// A failed subject (grade point 0) leaves the denominator entirely,
	// as does a subject with no resolved credit weight.
	agg := AggregateTerm([]models.Subject{
		subject(4, 8),
		subject(2, 0), // fail: excluded despite positive credits
		subject(0, 9), // zero credits: excluded despite passing
	})
	assert.Equal(t, 8.00, agg.SGPA)
	assert.Equal(t, 4, agg.Credits)
}

func TestAggregateTerm_AllIneligible(t *testing.T) {
	agg := AggregateTerm([]models.Subject{
		subject(2, 0),
		subject(0, 7),
	})
	assert.Equal(t, TermAggregate{}, agg)
}

func TestAggregateTerm_DerivesGradePointWhenNotPersisted(t *testing.T) {
	agg := AggregateTerm([]models.Subject{
		{Credits: 4, TotalMarks: 92}, // O -> 10
		{Credits: 4, TotalMarks: 68}, // A -> 8
	})
	assert.Equal(t, 9.00, agg.SGPA)
	assert.Equal(t, 8, agg.Credits)
}

func TestAggregateTerm_PersistedGradePointWins(t *testing.T) {
	stored := 7.0
	agg := AggregateTerm([]models.Subject{
		{Credits: 5, TotalMarks: 95, GradePoint: &stored},
	})
	assert.Equal(t, 7.00, agg.SGPA)
}

func TestAggregateTerm_RoundsOnceHalfUp(t *testing.T) {
	// (4*7 + 3*8) / 7 = 7.42857... -> 7.43
	agg := AggregateTerm([]models.Subject{subject(4, 7), subject(3, 8)})
	assert.Equal(t, 7.43, agg.SGPA)
}

func TestAggregateOverall_KnownExample(t *testing.T) {
	agg := AggregateOverall([]TermAggregate{
		{SGPA: 8.00, Credits: 20},
		{SGPA: 9.00, Credits: 18},
	})
	// round2((8.00*20 + 9.00*18) / 38) = round2(8.4737) = 8.47
	assert.Equal(t, 8.47, agg.CGPA)
	assert.Equal(t, 38, agg.Credits)
}

func TestAggregateOverall_SkipsZeroCreditTerms(t *testing.T) {
	withEmpty := AggregateOverall([]TermAggregate{
		{SGPA: 8.00, Credits: 20},
		{SGPA: 0, Credits: 0}, // brand-new or all-fail term
		{SGPA: 9.00, Credits: 18},
	})
	without := AggregateOverall([]TermAggregate{
		{SGPA: 8.00, Credits: 20},
		{SGPA: 9.00, Credits: 18},
	})
	assert.Equal(t, without, withEmpty)
}

func TestAggregateOverall_Empty(t *testing.T) {
	assert.Equal(t, OverallAggregate{}, AggregateOverall(nil))
}

func TestAggregation_Idempotent(t *testing.T) {
	subjects := []models.Subject{
		subject(4, 8),
		subject(2, 0),
		{Credits: 3, TotalMarks: 77},
	}
	first := AggregateTerm(subjects)
	second := AggregateTerm(subjects)
	assert.Equal(t, first, second)

	terms := []TermAggregate{first, {SGPA: 9.12, Credits: 22}}
	assert.Equal(t, AggregateOverall(terms), AggregateOverall(terms))
}

func TestEndToEnd_TwoTermScenario(t *testing.T) {
	term1 := AggregateTerm([]models.Subject{
		subject(4, 8),
		subject(2, 0), // fails the gradePoint > 0 test, so excluded entirely
	})
	assert.Equal(t, 8.00, term1.SGPA)
	assert.Equal(t, 4, term1.Credits)

	term2 := AggregateTerm([]models.Subject{
		subject(3, 9),
		subject(3, 7),
	})
	assert.Equal(t, 8.00, term2.SGPA)

	overall := AggregateOverall([]TermAggregate{term1, term2})
	assert.Equal(t, 8.00, overall.CGPA)
	assert.Equal(t, 10, overall.Credits)
}

func TestRound2_HalfUp(t *testing.T) {
	assert.Equal(t, 8.47, Round2(8.4737))
	assert.Equal(t, 8.13, Round2(8.125)) // exact half rounds up
	assert.Equal(t, 8.47, Round2(8.4749))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 10.0, Round2(10))
}
