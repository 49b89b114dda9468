package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
	"github.com/peerlist/peerlist-backend/internal/pkg/dberrors"
)

const studentColumns = `
	id, email, name, avatar_url, enrollment_no, batch, branch, college,
	consent_analytics, consent_rankboard, display_mode,
	marks_visibility, marks_visibility_at, created_at, updated_at`

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row interface{ Scan(dest ...any) error }) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Email, &s.Name, &s.AvatarURL, &s.EnrollmentNo,
		&s.Batch, &s.Branch, &s.College,
		&s.ConsentAnalytics, &s.ConsentRankboard, &s.DisplayMode,
		&s.MarksVisibility, &s.MarksVisibilityAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student profile at onboarding
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	query := `
		INSERT INTO students (
			id, email, name, avatar_url, enrollment_no, batch, branch, college,
			consent_analytics, consent_rankboard, display_mode, marks_visibility
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.ID, s.Email, s.Name, s.AvatarURL, s.EnrollmentNo, s.Batch, s.Branch, s.College,
		s.ConsentAnalytics, s.ConsentRankboard, s.DisplayMode, s.MarksVisibility,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_no_key") {
			return apperrors.ErrEnrollmentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student profile by id
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// UpdateConsent applies a partial consent/settings change as one atomic
// UPDATE. NULL request fields leave the column untouched;
// marks_visibility_at is stamped when marks sharing flips to granted.
func (r *StudentRepository) UpdateConsent(ctx context.Context, id uuid.UUID, req *dto.UpdateConsentRequest) (*models.Student, error) {
	query := `
		UPDATE students SET
			consent_analytics = COALESCE($2, consent_analytics),
			consent_rankboard = COALESCE($3, consent_rankboard),
			marks_visibility  = COALESCE($4, marks_visibility),
			marks_visibility_at = CASE
				WHEN $4 IS TRUE AND marks_visibility = FALSE THEN now()
				ELSE marks_visibility_at
			END,
			display_mode = COALESCE($5, display_mode),
			updated_at   = now()
		WHERE id = $1
		RETURNING ` + studentColumns

	student, err := scanStudent(r.db.QueryRow(ctx, query,
		id, req.ConsentAnalytics, req.ConsentRankboard, req.MarksVisibility, req.DisplayMode))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating consent: %w", err)
	}

	return student, nil
}

// Delete removes a student; owned records, subjects and consent logs go with
// it via ON DELETE CASCADE. Deletion audit entries are kept in a separate
// table with no foreign key and survive.
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

const cohortFilter = `batch = $1 AND branch = $2 AND college = $3`

// CountCohortPeersVisible counts the marks-sharing students in a cohort,
// including the requester. The caller compares this against the minimum
// cohort size before disclosing anything.
func (r *StudentRepository) CountCohortPeersVisible(ctx context.Context, cohort models.Cohort) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM students WHERE ` + cohortFilter + ` AND marks_visibility = TRUE`
	err := r.db.QueryRow(ctx, query, cohort.Batch, cohort.Branch, cohort.College).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting visible cohort peers: %w", err)
	}
	return count, nil
}

// ListCohortPeersVisible lists the marks-sharing students in a cohort,
// excluding the requester, ordered stably for pagination.
func (r *StudentRepository) ListCohortPeersVisible(ctx context.Context, cohort models.Cohort, exclude uuid.UUID, offset uint64, limit int) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE ` + cohortFilter + ` AND marks_visibility = TRUE AND id != $4
		ORDER BY enrollment_no
		OFFSET $5 LIMIT $6
	`

	rows, err := r.db.Query(ctx, query, cohort.Batch, cohort.Branch, cohort.College, exclude, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing cohort peers: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CountCohortRankEligible counts the students in a cohort who granted both
// analytics and rankboard consent.
func (r *StudentRepository) CountCohortRankEligible(ctx context.Context, cohort models.Cohort) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM students
		WHERE ` + cohortFilter + ` AND consent_analytics = TRUE AND consent_rankboard = TRUE`
	err := r.db.QueryRow(ctx, query, cohort.Batch, cohort.Branch, cohort.College).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting rank-eligible cohort: %w", err)
	}
	return count, nil
}

// ListCohortRankEligible lists the rankboard-eligible students in a cohort.
// Eligibility is read fresh on every call so a revoked consent is reflected
// by the very next rankboard fetch.
func (r *StudentRepository) ListCohortRankEligible(ctx context.Context, cohort models.Cohort) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE ` + cohortFilter + ` AND consent_analytics = TRUE AND consent_rankboard = TRUE
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, cohort.Batch, cohort.Branch, cohort.College)
	if err != nil {
		return nil, fmt.Errorf("error listing rank-eligible cohort: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
