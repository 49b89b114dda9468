package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// ConsentRepository handles the append-only consent audit log and the
// deletion audit log
type ConsentRepository struct {
	db *pgxpool.Pool
}

// NewConsentRepository creates a new consent repository
func NewConsentRepository(db *pgxpool.Pool) *ConsentRepository {
	return &ConsentRepository{db: db}
}

// InsertLog appends one consent audit entry
func (r *ConsentRepository) InsertLog(ctx context.Context, log *models.ConsentLog) error {
	query := `
		INSERT INTO consent_logs (id, student_id, consent_type, action)
		VALUES ($1, $2, $3, $4)
		RETURNING logged_at
	`

	err := r.db.QueryRow(ctx, query, log.ID, log.StudentID, log.ConsentType, log.Action).
		Scan(&log.LoggedAt)
	if err != nil {
		return fmt.Errorf("error inserting consent log: %w", err)
	}

	return nil
}

// ListLogsByStudent returns a student's consent history, newest first
func (r *ConsentRepository) ListLogsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.ConsentLog, error) {
	query := `
		SELECT id, student_id, consent_type, action, logged_at
		FROM consent_logs
		WHERE student_id = $1
		ORDER BY logged_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving consent logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.ConsentLog, 0)
	for rows.Next() {
		var l models.ConsentLog
		if err := rows.Scan(&l.ID, &l.StudentID, &l.ConsentType, &l.Action, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// InsertDeletionLog records the pre-deletion audit entry. The table has no
// foreign key to students, so the entry survives the deletion it records.
func (r *ConsentRepository) InsertDeletionLog(ctx context.Context, log *models.DeletionLog) error {
	query := `
		INSERT INTO deletion_logs (id, student_id, enrollment_no, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING logged_at
	`

	err := r.db.QueryRow(ctx, query, log.ID, log.StudentID, log.EnrollmentNo, log.Reason).
		Scan(&log.LoggedAt)
	if err != nil {
		return fmt.Errorf("error inserting deletion log: %w", err)
	}

	return nil
}

// DeletionLogExists checks that a deletion audit entry persisted
// independently of the deleted student row.
func (r *ConsentRepository) DeletionLogExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM deletion_logs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking deletion log: %w", err)
	}
	return exists, nil
}

// MarkDeletionVerified stamps the audit entry once the post-deletion
// verification succeeded
func (r *ConsentRepository) MarkDeletionVerified(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE deletion_logs SET verified_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking deletion verified: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deletion log %s not found", id)
	}

	return nil
}
