package models

import (
	"github.com/google/uuid"
)

// Mark scheme constants. Internal and external components have fixed maxima.
const (
	MaxInternalMarks = 40
	MaxExternalMarks = 60
	MaxTotalMarks    = 100

	MinCredits = 1
	MaxCredits = 10
)

// Subject defines one examined subject within a term based on the 'subjects'
// table. Grade and grade point are derived at import time and persisted
// verbatim; when both a stored grade point and a derivable one exist, the
// stored value is authoritative so a later change to the classification
// table cannot drift historical results.
type Subject struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RecordID      uuid.UUID `json:"recordId" db:"record_id"`
	Code          string    `json:"code" db:"code"`
	Name          string    `json:"name" db:"name"`
	InternalMarks float64   `json:"internalMarks" db:"internal_marks"` // 0..40
	ExternalMarks float64   `json:"externalMarks" db:"external_marks"` // 0..60
	MaxInternal   int       `json:"maxInternal" db:"max_internal"`     // Fixed 40
	MaxExternal   int       `json:"maxExternal" db:"max_external"`     // Fixed 60
	TotalMarks    float64   `json:"totalMarks" db:"total_marks"`       // <= 100
	Credits       int       `json:"credits" db:"credits"`              // 1..10
	Grade         *string   `json:"grade,omitempty" db:"grade"`        // Persisted letter grade
	GradePoint    *float64  `json:"gradePoint,omitempty" db:"grade_point"`
}
