package dto

import (
	"time"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// ExportDocument is the flat data-portability document: everything the
// platform holds about one student in a single JSON payload.
type ExportDocument struct {
	Student    *models.Student         `json:"student"`
	Records    []models.AcademicRecord `json:"records"`
	ConsentLog []models.ConsentLog     `json:"consentLog"`
	ExportedAt time.Time               `json:"exportedAt"`
}

// DeleteAccountRequest requires the student to retype their enrollment
// number, mirroring the confirmation the client collects before an
// irreversible deletion.
type DeleteAccountRequest struct {
	EnrollmentNo string  `json:"enrollmentNo" binding:"required"`
	Reason       *string `json:"reason,omitempty"`
}
