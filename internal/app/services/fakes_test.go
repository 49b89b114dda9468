package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory StudentStore for service tests.
type fakeStudentStore struct {
	students map[uuid.UUID]*models.Student
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	m := make(map[uuid.UUID]*models.Student, len(students))
	for _, s := range students {
		m[s.ID] = s
	}
	return &fakeStudentStore{students: m}
}

func (f *fakeStudentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) UpdateConsent(_ context.Context, id uuid.UUID, req *dto.UpdateConsentRequest) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if req.ConsentAnalytics != nil {
		s.ConsentAnalytics = *req.ConsentAnalytics
	}
	if req.ConsentRankboard != nil {
		s.ConsentRankboard = *req.ConsentRankboard
	}
	if req.MarksVisibility != nil {
		s.MarksVisibility = *req.MarksVisibility
	}
	if req.DisplayMode != nil {
		s.DisplayMode = models.DisplayMode(*req.DisplayMode)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) cohortMembers(cohort models.Cohort) []*models.Student {
	var out []*models.Student
	for _, s := range f.students {
		c, ok := models.CohortOf(s)
		if ok && c == cohort {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeStudentStore) CountCohortPeersVisible(_ context.Context, cohort models.Cohort) (int, error) {
	n := 0
	for _, s := range f.cohortMembers(cohort) {
		if s.MarksVisibility {
			n++
		}
	}
	return n, nil
}

func (f *fakeStudentStore) ListCohortPeersVisible(_ context.Context, cohort models.Cohort, exclude uuid.UUID, offset uint64, limit int) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.cohortMembers(cohort) {
		if s.MarksVisibility && s.ID != exclude {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrollmentNo < out[j].EnrollmentNo })
	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStudentStore) CountCohortRankEligible(_ context.Context, cohort models.Cohort) (int, error) {
	n := 0
	for _, s := range f.cohortMembers(cohort) {
		if s.ConsentAnalytics && s.ConsentRankboard {
			n++
		}
	}
	return n, nil
}

func (f *fakeStudentStore) ListCohortRankEligible(_ context.Context, cohort models.Cohort) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.cohortMembers(cohort) {
		if s.ConsentAnalytics && s.ConsentRankboard {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// fakeResultsStore is an in-memory ResultsStore keyed by student id.
type fakeResultsStore struct {
	records map[uuid.UUID][]models.AcademicRecord
}

func newFakeResultsStore() *fakeResultsStore {
	return &fakeResultsStore{records: make(map[uuid.UUID][]models.AcademicRecord)}
}

func (f *fakeResultsStore) GetRecordsWithSubjects(_ context.Context, studentID uuid.UUID) ([]models.AcademicRecord, error) {
	return f.records[studentID], nil
}

func (f *fakeResultsStore) CreateRecordWithSubjects(_ context.Context, record *models.AcademicRecord) error {
	for _, existing := range f.records[record.StudentID] {
		if existing.Semester == record.Semester {
			return apperrors.ErrSemesterAlreadyImported
		}
	}
	f.records[record.StudentID] = append(f.records[record.StudentID], *record)
	return nil
}

// fakeConsentStore is an in-memory ConsentStore. Insert notifications are
// delivered on inserted so tests can wait for asynchronous audit writes.
type fakeConsentStore struct {
	logs         []models.ConsentLog
	deletionLogs map[uuid.UUID]*models.DeletionLog
	inserted     chan models.ConsentLog
}

func newFakeConsentStore() *fakeConsentStore {
	return &fakeConsentStore{
		deletionLogs: make(map[uuid.UUID]*models.DeletionLog),
		inserted:     make(chan models.ConsentLog, 16),
	}
}

func (f *fakeConsentStore) InsertLog(_ context.Context, log *models.ConsentLog) error {
	f.logs = append(f.logs, *log)
	f.inserted <- *log
	return nil
}

func (f *fakeConsentStore) ListLogsByStudent(_ context.Context, studentID uuid.UUID) ([]models.ConsentLog, error) {
	out := make([]models.ConsentLog, 0)
	for _, l := range f.logs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeConsentStore) InsertDeletionLog(_ context.Context, log *models.DeletionLog) error {
	copied := *log
	f.deletionLogs[log.ID] = &copied
	return nil
}

func (f *fakeConsentStore) DeletionLogExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.deletionLogs[id]
	return ok, nil
}

func (f *fakeConsentStore) MarkDeletionVerified(_ context.Context, id uuid.UUID) error {
	l, ok := f.deletionLogs[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	now := time.Now().UTC()
	l.VerifiedAt = &now
	return nil
}

// test fixture helpers

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func testStudent(enrollment string, sharing bool) *models.Student {
	return &models.Student{
		ID:              uuid.New(),
		Email:           enrollment + "@example.edu",
		Name:            strPtr("Student " + enrollment),
		EnrollmentNo:    enrollment,
		Batch:           strPtr("2022"),
		Branch:          strPtr("CSE"),
		College:         strPtr("MAIT"),
		DisplayMode:     models.DisplayModePseudonymous,
		MarksVisibility: sharing,
	}
}

func testRecord(studentID uuid.UUID, semester int, subjects ...models.Subject) models.AcademicRecord {
	return models.AcademicRecord{
		ID:        uuid.New(),
		StudentID: studentID,
		Semester:  semester,
		Subjects:  subjects,
	}
}

func testSubject(code string, total float64, credits int) models.Subject {
	return models.Subject{
		ID:         uuid.New(),
		Code:       code,
		Name:       code,
		TotalMarks: total,
		Credits:    credits,
	}
}
