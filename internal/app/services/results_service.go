package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/grading"
	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

// ResultsService computes a student's own performance metrics and handles
// semester imports
type ResultsService struct {
	studentStore StudentStore
	resultsStore ResultsStore
}

// NewResultsService creates a new results service instance
func NewResultsService(studentStore StudentStore, resultsStore ResultsStore) *ResultsService {
	return &ResultsService{
		studentStore: studentStore,
		resultsStore: resultsStore,
	}
}

// GetDashboard returns the student's profile with per-term and overall
// metrics, recomputed from the subject rows on every call.
func (s *ResultsService) GetDashboard(ctx context.Context, studentID uuid.UUID) (*dto.DashboardResponse, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records, err := s.resultsStore.GetRecordsWithSubjects(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving records: %w", err)
	}

	semesters, overall := computeStats(records, true)

	return &dto.DashboardResponse{
		Student:   student,
		Semesters: semesters,
		Overall:   overall,
	}, nil
}

// ImportSemester validates and stores one semester's subjects. Grade and
// grade point are classified once at import and persisted verbatim, so the
// stored figures stay stable even if the classification table changes
// later.
func (s *ResultsService) ImportSemester(ctx context.Context, studentID uuid.UUID, req *dto.ImportSemesterRequest) (*dto.ImportSemesterResponse, error) {
	if _, err := s.studentStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	record := &models.AcademicRecord{
		ID:        uuid.New(),
		StudentID: studentID,
		Semester:  req.Semester,
		Subjects:  make([]models.Subject, 0, len(req.Subjects)),
	}

	for _, in := range req.Subjects {
		subject, err := buildSubject(in)
		if err != nil {
			return nil, err
		}
		record.Subjects = append(record.Subjects, subject)
	}

	if err := s.resultsStore.CreateRecordWithSubjects(ctx, record); err != nil {
		return nil, err
	}

	return &dto.ImportSemesterResponse{
		RecordID:    record.ID.String(),
		Semester:    record.Semester,
		Subjects:    len(record.Subjects),
		SubmittedAt: record.SubmittedAt,
	}, nil
}

func buildSubject(in dto.SubjectInput) (models.Subject, error) {
	if in.InternalMarks < 0 || in.InternalMarks > models.MaxInternalMarks {
		return models.Subject{}, apperrors.NewBadRequestError(
			fmt.Sprintf("internal marks for %s out of range", in.Code))
	}
	if in.ExternalMarks < 0 || in.ExternalMarks > models.MaxExternalMarks {
		return models.Subject{}, apperrors.NewBadRequestError(
			fmt.Sprintf("external marks for %s out of range", in.Code))
	}
	if in.Credits < models.MinCredits || in.Credits > models.MaxCredits {
		return models.Subject{}, apperrors.NewBadRequestError(
			fmt.Sprintf("credits for %s out of range", in.Code))
	}

	// The portal's moderated total is authoritative when supplied.
	total := in.InternalMarks + in.ExternalMarks
	if in.TotalMarks != nil {
		total = *in.TotalMarks
	}
	if total > models.MaxTotalMarks {
		return models.Subject{}, apperrors.NewBadRequestError(
			fmt.Sprintf("total marks for %s out of range", in.Code))
	}

	grade, gradePoint := grading.Classify(total)
	gradeStr := string(grade)

	return models.Subject{
		ID:            uuid.New(),
		Code:          in.Code,
		Name:          in.Name,
		InternalMarks: in.InternalMarks,
		ExternalMarks: in.ExternalMarks,
		MaxInternal:   models.MaxInternalMarks,
		MaxExternal:   models.MaxExternalMarks,
		TotalMarks:    total,
		Credits:       in.Credits,
		Grade:         &gradeStr,
		GradePoint:    &gradePoint,
	}, nil
}

// computeStats reduces records to per-term and overall metrics through the
// same path the rankboard uses: CGPA is the credit-weighted average of the
// already-rounded SGPAs, never a pooled re-aggregation.
func computeStats(records []models.AcademicRecord, includeSubjects bool) ([]dto.SemesterStats, dto.OverallStats) {
	semesters := make([]dto.SemesterStats, 0, len(records))
	termAggregates := make([]grading.TermAggregate, 0, len(records))
	var allSubjects []models.Subject

	for _, rec := range records {
		agg := grading.AggregateTerm(rec.Subjects)
		termAggregates = append(termAggregates, agg)
		allSubjects = append(allSubjects, rec.Subjects...)

		var totalMarks float64
		for _, sub := range rec.Subjects {
			totalMarks += sub.TotalMarks
		}

		stats := dto.SemesterStats{
			Semester:     rec.Semester,
			SGPA:         agg.SGPA,
			TotalCredits: agg.Credits,
			SubjectCount: len(rec.Subjects),
			TotalMarks:   totalMarks,
			MaxMarks:     float64(len(rec.Subjects) * models.MaxTotalMarks),
		}
		if includeSubjects {
			stats.Subjects = rec.Subjects
		}
		semesters = append(semesters, stats)
	}

	overallAgg := grading.AggregateOverall(termAggregates)
	overall := dto.OverallStats{
		CGPA:              overallAgg.CGPA,
		TotalCredits:      overallAgg.Credits,
		TotalSubjects:     len(allSubjects),
		TotalSemesters:    len(records),
		GradeDistribution: grading.OrderedDistribution(allSubjects),
	}

	return semesters, overall
}
