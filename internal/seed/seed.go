package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/peerlist/peerlist-backend/internal/app/grading"
	appModels "github.com/peerlist/peerlist-backend/internal/app/models"
	appRepos "github.com/peerlist/peerlist-backend/internal/app/repositories"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

type demoStudent struct {
	email        string
	name         string
	enrollmentNo string
	displayMode  appModels.DisplayMode
	sharesMarks  bool
	onRankboard  bool
	// totals per subject for semester 1, all 4 credits each
	totals []float64
}

// A small cohort large enough to clear the disclosure minimum, with mixed
// consent states so every gate is exercisable right after seeding.
var demoCohort = []demoStudent{
	{
		email: "aarav@example.edu", name: "Aarav Sharma", enrollmentNo: "03520802722",
		displayMode: appModels.DisplayModeVisible, sharesMarks: true, onRankboard: true,
		totals: []float64{92, 85, 78},
	},
	{
		email: "diya@example.edu", name: "Diya Patel", enrollmentNo: "04120802722",
		displayMode: appModels.DisplayModePseudonymous, sharesMarks: true, onRankboard: true,
		totals: []float64{88, 91, 69},
	},
	{
		email: "kabir@example.edu", name: "Kabir Singh", enrollmentNo: "05220802722",
		displayMode: appModels.DisplayModeAnonymous, sharesMarks: true, onRankboard: false,
		totals: []float64{74, 58, 62},
	},
	{
		email: "meera@example.edu", name: "Meera Gupta", enrollmentNo: "06320802722",
		displayMode: appModels.DisplayModePseudonymous, sharesMarks: false, onRankboard: false,
		totals: []float64{81, 77, 90},
	},
}

var demoSubjects = []struct {
	code string
	name string
}{
	{"CS-101", "Programming Fundamentals"},
	{"MA-101", "Applied Mathematics I"},
	{"PH-101", "Applied Physics I"},
}

// CreateDemoData seeds a demo cohort with one imported semester each.
// Intended for development environments only; existing students are left
// untouched.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating demo cohort...")
	var finalErr error

	for _, d := range demoCohort {
		student := &appModels.Student{
			ID:               uuid.New(),
			Email:            d.email,
			Name:             strPtr(d.name),
			EnrollmentNo:     d.enrollmentNo,
			Batch:            strPtr("2022"),
			Branch:           strPtr("CSE"),
			College:          strPtr("MAIT"),
			ConsentAnalytics: d.onRankboard,
			ConsentRankboard: d.onRankboard,
			DisplayMode:      d.displayMode,
			MarksVisibility:  d.sharesMarks,
		}

		err := repos.StudentRepository.Create(ctx, student)
		if errors.Is(err, apperrors.ErrEnrollmentAlreadyExists) {
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("enrollmentNo", d.enrollmentNo).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		record := &appModels.AcademicRecord{
			ID:        uuid.New(),
			StudentID: student.ID,
			Semester:  1,
		}
		for i, total := range d.totals {
			grade, gradePoint := grading.Classify(total)
			gradeStr := string(grade)
			gp := gradePoint
			record.Subjects = append(record.Subjects, appModels.Subject{
				ID:            uuid.New(),
				Code:          demoSubjects[i].code,
				Name:          demoSubjects[i].name,
				InternalMarks: total * 0.4,
				ExternalMarks: total * 0.6,
				MaxInternal:   appModels.MaxInternalMarks,
				MaxExternal:   appModels.MaxExternalMarks,
				TotalMarks:    total,
				Credits:       4,
				Grade:         &gradeStr,
				GradePoint:    &gp,
			})
		}

		if err := repos.ResultsRepository.CreateRecordWithSubjects(ctx, record); err != nil &&
			!errors.Is(err, apperrors.ErrSemesterAlreadyImported) {
			lgr.Error().Err(err).Str("enrollmentNo", d.enrollmentNo).Msg("Error seeding demo record")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo cohort ready")
	}
	return finalErr
}
