package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
)

// Services defined in this package:
// - ResultsService: own dashboard metrics and semester imports
// - PeerService: consent-gated peer directory and peer dashboards
// - RankboardService: consent-gated cohort leaderboard
// - ConsentService: settings reads and consent updates with audit logging
// - AccountService: data export and audited account deletion

// StudentStore is the profile persistence capability the services consume.
// Profiles are always read fresh; caching one across requests would turn a
// consent revocation into a privacy leak.
type StudentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	UpdateConsent(ctx context.Context, id uuid.UUID, req *dto.UpdateConsentRequest) (*models.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountCohortPeersVisible(ctx context.Context, cohort models.Cohort) (int, error)
	ListCohortPeersVisible(ctx context.Context, cohort models.Cohort, exclude uuid.UUID, offset uint64, limit int) ([]*models.Student, error)
	CountCohortRankEligible(ctx context.Context, cohort models.Cohort) (int, error)
	ListCohortRankEligible(ctx context.Context, cohort models.Cohort) ([]*models.Student, error)
}

// ResultsStore is the academic-record persistence capability.
type ResultsStore interface {
	GetRecordsWithSubjects(ctx context.Context, studentID uuid.UUID) ([]models.AcademicRecord, error)
	CreateRecordWithSubjects(ctx context.Context, record *models.AcademicRecord) error
}

// ConsentStore is the audit-log persistence capability.
type ConsentStore interface {
	InsertLog(ctx context.Context, log *models.ConsentLog) error
	ListLogsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.ConsentLog, error)
	InsertDeletionLog(ctx context.Context, log *models.DeletionLog) error
	DeletionLogExists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkDeletionVerified(ctx context.Context, id uuid.UUID) error
}
