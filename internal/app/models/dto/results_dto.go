package dto

import (
	"time"

	"github.com/peerlist/peerlist-backend/internal/app/grading"
	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// SubjectInput is one subject in a semester import request. The total is
// derived from internal+external unless the portal supplied an
// authoritative total.
type SubjectInput struct {
	Code          string   `json:"code" binding:"required" example:"CS-201"`
	Name          string   `json:"name" binding:"required" example:"Data Structures"`
	InternalMarks float64  `json:"internalMarks" binding:"min=0,max=40" example:"32"`
	ExternalMarks float64  `json:"externalMarks" binding:"min=0,max=60" example:"48"`
	TotalMarks    *float64 `json:"totalMarks,omitempty" binding:"omitempty,min=0,max=100"`
	Credits       int      `json:"credits" binding:"required,min=1,max=10" example:"4"`
}

// ImportSemesterRequest is the request body for importing one semester's
// normalized score records.
type ImportSemesterRequest struct {
	Semester int            `json:"semester" binding:"required,min=1,max=10" example:"3"`
	Subjects []SubjectInput `json:"subjects" binding:"required,min=1,dive"`
}

// SemesterStats holds the derived metrics for one term. Recomputed on every
// read; never cached across requests.
type SemesterStats struct {
	Semester     int              `json:"semester" example:"3"`
	SGPA         float64          `json:"sgpa" example:"8.47"`
	TotalCredits int              `json:"totalCredits" example:"22"`
	SubjectCount int              `json:"subjectCount" example:"6"`
	TotalMarks   float64          `json:"totalMarks" example:"432"`
	MaxMarks     float64          `json:"maxMarks" example:"600"`
	Subjects     []models.Subject `json:"subjects,omitempty"`
}

// OverallStats holds the cumulative metrics across all terms.
type OverallStats struct {
	CGPA              float64              `json:"cgpa" example:"8.12"`
	TotalCredits      int                  `json:"totalCredits" example:"134"`
	TotalSubjects     int                  `json:"totalSubjects" example:"38"`
	TotalSemesters    int                  `json:"totalSemesters" example:"6"`
	GradeDistribution []grading.GradeCount `json:"gradeDistribution"`
}

// DashboardResponse is the student's own metrics view.
type DashboardResponse struct {
	Student   *models.Student `json:"student"`
	Semesters []SemesterStats `json:"semesters"`
	Overall   OverallStats    `json:"overall"`
}

// ImportSemesterResponse confirms an import and echoes the stored record.
type ImportSemesterResponse struct {
	RecordID    string    `json:"recordId"`
	Semester    int       `json:"semester"`
	Subjects    int       `json:"subjects"`
	SubmittedAt time.Time `json:"submittedAt"`
}
