package grading

import (
	"math"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// TermAggregate is the reduction of one term's subjects.
type TermAggregate struct {
	SGPA    float64 `json:"sgpa"`
	Credits int     `json:"credits"`
}

// AggregateTerm reduces a term's subjects to its SGPA and credit total.
//
// A subject contributes only when both its resolved grade point and its
// credit weight are strictly positive: a failed subject (grade point 0) or
// an unresolved credit weight drops out of the denominator entirely. This
// matches the reference computation path and must not be relaxed, since the
// rankboard compares CGPAs derived from these figures bit-for-bit.
//
// Rounding is half-up to two decimals, applied once at the end.
func AggregateTerm(subjects []models.Subject) TermAggregate {
	var weighted float64
	var credits int
	for i := range subjects {
		gp := ResolveGradePoint(&subjects[i])
		if gp <= 0 || subjects[i].Credits <= 0 {
			continue
		}
		weighted += float64(subjects[i].Credits) * gp
		credits += subjects[i].Credits
	}
	if credits == 0 {
		return TermAggregate{}
	}
	return TermAggregate{
		SGPA:    Round2(weighted / float64(credits)),
		Credits: credits,
	}
}

// ResolveGradePoint returns the subject's grade point, preferring the value
// persisted at import time over one derived from the current scale.
func ResolveGradePoint(s *models.Subject) float64 {
	if s.GradePoint != nil {
		return *s.GradePoint
	}
	_, gp := Classify(s.TotalMarks)
	return gp
}

// ResolveGrade returns the subject's letter grade, preferring the persisted
// value over classification from the total score.
func ResolveGrade(s *models.Subject) Grade {
	if s.Grade != nil && *s.Grade != "" {
		return Grade(*s.Grade)
	}
	grade, _ := Classify(s.TotalMarks)
	return grade
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
