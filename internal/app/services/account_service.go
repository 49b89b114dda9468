package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
	"github.com/peerlist/peerlist-backend/internal/pkg/logger"
)

// AccountService handles data export and audited account deletion.
type AccountService struct {
	studentStore StudentStore
	resultsStore ResultsStore
	consentStore ConsentStore
}

// NewAccountService creates a new account service instance
func NewAccountService(studentStore StudentStore, resultsStore ResultsStore, consentStore ConsentStore) *AccountService {
	return &AccountService{
		studentStore: studentStore,
		resultsStore: resultsStore,
		consentStore: consentStore,
	}
}

// ExportData assembles the full data-portability document for one student:
// profile, every imported record with its subjects, and the consent history.
func (s *AccountService) ExportData(ctx context.Context, studentID uuid.UUID) (*dto.ExportDocument, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records, err := s.resultsStore.GetRecordsWithSubjects(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving records for export: %w", err)
	}

	history, err := s.consentStore.ListLogsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving consent history for export: %w", err)
	}

	return &dto.ExportDocument{
		Student:    student,
		Records:    records,
		ConsentLog: history,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// DeleteAccount performs the audited erasure flow. The audit entry is
// written before any row is removed; if it cannot be written the deletion
// does not proceed. After the cascade the entry's survival is verified and
// stamped, since it lives in a table with no foreign key to students.
func (s *AccountService) DeleteAccount(ctx context.Context, studentID uuid.UUID, req *dto.DeleteAccountRequest) error {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	// Retyping the enrollment number is the confirmation step.
	if req.EnrollmentNo != student.EnrollmentNo {
		return apperrors.NewBadRequestError("enrollment number does not match")
	}

	reason := "user requested"
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}

	audit := &models.DeletionLog{
		ID:           uuid.New(),
		StudentID:    student.ID,
		EnrollmentNo: student.EnrollmentNo,
		Reason:       reason,
		LoggedAt:     time.Now().UTC(),
	}
	if err := s.consentStore.InsertDeletionLog(ctx, audit); err != nil {
		return fmt.Errorf("error writing deletion audit entry: %w", err)
	}

	if err := s.studentStore.Delete(ctx, studentID); err != nil {
		return err
	}

	exists, err := s.consentStore.DeletionLogExists(ctx, audit.ID)
	if err != nil {
		return fmt.Errorf("error verifying deletion audit entry: %w", err)
	}
	if !exists {
		return apperrors.ErrDeletionAuditMissing
	}
	if err := s.consentStore.MarkDeletionVerified(ctx, audit.ID); err != nil {
		return fmt.Errorf("error stamping deletion audit entry: %w", err)
	}

	logger.Info().
		Str("studentId", studentID.String()).
		Str("auditId", audit.ID.String()).
		Msg("Account deleted and audit entry verified")

	return nil
}
