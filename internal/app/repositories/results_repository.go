package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/db"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
	"github.com/peerlist/peerlist-backend/internal/pkg/dberrors"
)

// ResultsRepository handles database operations for academic records and
// their subjects
type ResultsRepository struct {
	db *pgxpool.Pool
}

// NewResultsRepository creates a new results repository
func NewResultsRepository(db *pgxpool.Pool) *ResultsRepository {
	return &ResultsRepository{db: db}
}

// GetRecordsWithSubjects retrieves a student's academic records ordered by
// semester, each with its subjects nested.
func (r *ResultsRepository) GetRecordsWithSubjects(ctx context.Context, studentID uuid.UUID) ([]models.AcademicRecord, error) {
	recordQuery := `
		SELECT id, student_id, semester, submitted_at
		FROM academic_records
		WHERE student_id = $1
		ORDER BY semester
	`

	rows, err := r.db.Query(ctx, recordQuery, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academic records: %w", err)
	}
	defer rows.Close()

	var records []models.AcademicRecord
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var rec models.AcademicRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Semester, &rec.SubmittedAt); err != nil {
			return nil, err
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return records, nil
	}

	subjectQuery := `
		SELECT s.id, s.record_id, s.code, s.name,
		       s.internal_marks, s.external_marks, s.max_internal, s.max_external,
		       s.total_marks, s.credits, s.grade, s.grade_point
		FROM subjects s
		JOIN academic_records ar ON ar.id = s.record_id
		WHERE ar.student_id = $1
		ORDER BY ar.semester, s.code
	`

	subjectRows, err := r.db.Query(ctx, subjectQuery, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	defer subjectRows.Close()

	for subjectRows.Next() {
		var s models.Subject
		if err := subjectRows.Scan(
			&s.ID, &s.RecordID, &s.Code, &s.Name,
			&s.InternalMarks, &s.ExternalMarks, &s.MaxInternal, &s.MaxExternal,
			&s.TotalMarks, &s.Credits, &s.Grade, &s.GradePoint,
		); err != nil {
			return nil, err
		}
		if i, ok := index[s.RecordID]; ok {
			records[i].Subjects = append(records[i].Subjects, s)
		}
	}
	if err := subjectRows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// CreateRecordWithSubjects inserts one semester's record and all its
// subjects in a single transaction, so a half-imported term can never be
// observed.
func (r *ResultsRepository) CreateRecordWithSubjects(ctx context.Context, record *models.AcademicRecord) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insertRecord := `
			INSERT INTO academic_records (id, student_id, semester)
			VALUES ($1, $2, $3)
			RETURNING submitted_at
		`

		err := tx.QueryRow(ctx, insertRecord, record.ID, record.StudentID, record.Semester).
			Scan(&record.SubmittedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "academic_records_student_semester_uq") {
				return apperrors.ErrSemesterAlreadyImported
			}
			return fmt.Errorf("error creating academic record: %w", err)
		}

		insertSubject := `
			INSERT INTO subjects (
				id, record_id, code, name,
				internal_marks, external_marks, max_internal, max_external,
				total_marks, credits, grade, grade_point
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`

		for i := range record.Subjects {
			s := &record.Subjects[i]
			s.RecordID = record.ID
			if _, err := tx.Exec(ctx, insertSubject,
				s.ID, s.RecordID, s.Code, s.Name,
				s.InternalMarks, s.ExternalMarks, s.MaxInternal, s.MaxExternal,
				s.TotalMarks, s.Credits, s.Grade, s.GradePoint,
			); err != nil {
				return fmt.Errorf("error creating subject %s: %w", s.Code, err)
			}
		}

		return nil
	})
}
