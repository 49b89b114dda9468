package models

import (
	"time"

	"github.com/google/uuid"
)

// AcademicRecord defines one semester's import batch based on the
// 'academic_records' table. Owned exclusively by the student and immutable
// after creation except for cascading delete.
type AcademicRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StudentID   uuid.UUID `json:"studentId" db:"student_id"`
	Semester    int       `json:"semester" db:"semester"` // Ordinal term number (1..10)
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`

	// Relation (populated when needed)
	Subjects []Subject `json:"subjects,omitempty"`
}
