package models

import (
	"time"

	"github.com/google/uuid"
)

// DisplayMode controls how a student's identity appears to other students.
type DisplayMode string

const (
	DisplayModeAnonymous    DisplayMode = "anonymous"
	DisplayModePseudonymous DisplayMode = "pseudonymous"
	DisplayModeVisible      DisplayMode = "visible"
)

// IsValid reports whether the mode is one of the three supported modes.
func (m DisplayMode) IsValid() bool {
	switch m {
	case DisplayModeAnonymous, DisplayModePseudonymous, DisplayModeVisible:
		return true
	}
	return false
}

// Student defines the student model based on the 'students' table.
// The enrollment number is immutable and is never disclosed to peers;
// only the masked identity derived from it may leave the trust boundary.
type Student struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Email            string      `json:"email" db:"email"`
	Name             *string     `json:"name,omitempty" db:"name"`                    // Real name (nullable)
	AvatarURL        *string     `json:"avatarUrl,omitempty" db:"avatar_url"`         // Avatar reference owned by the identity provider
	EnrollmentNo     string      `json:"enrollmentNo" db:"enrollment_no"`             // Immutable, never shown to peers
	Batch            *string     `json:"batch,omitempty" db:"batch"`                  // Cohort year, e.g. "2022"
	Branch           *string     `json:"branch,omitempty" db:"branch"`                // Program/branch, e.g. "CSE"
	College          *string     `json:"college,omitempty" db:"college"`              // Institution
	ConsentAnalytics bool        `json:"consentAnalytics" db:"consent_analytics"`     // Derived-metric computation consent
	ConsentRankboard bool        `json:"consentRankboard" db:"consent_rankboard"`     // Leaderboard inclusion consent
	DisplayMode      DisplayMode `json:"displayMode" db:"display_mode"`               // anonymous | pseudonymous | visible
	MarksVisibility  bool        `json:"marksVisibility" db:"marks_visibility"`       // Peer marks-sharing opt-in
	MarksVisibilityAt *time.Time `json:"marksVisibilityAt,omitempty" db:"marks_visibility_at"` // When marks sharing was last granted
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

// Cohort identifies the disclosure-scoping unit: students sharing the same
// batch, branch and college.
type Cohort struct {
	Batch   string
	Branch  string
	College string
}

// CohortOf returns the student's cohort. The second return value is false
// when any of the three fields is missing; such students never appear in
// cohort-scoped listings.
func CohortOf(s *Student) (Cohort, bool) {
	if s == nil || s.Batch == nil || s.Branch == nil || s.College == nil {
		return Cohort{}, false
	}
	return Cohort{Batch: *s.Batch, Branch: *s.Branch, College: *s.College}, true
}
