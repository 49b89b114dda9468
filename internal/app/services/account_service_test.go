package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

func TestExportData_IncludesEverything(t *testing.T) {
	student := testStudent("00112345", true)
	results := newFakeResultsStore()
	results.records[student.ID] = []models.AcademicRecord{
		testRecord(student.ID, 1, testSubject("CS-101", 92, 4)),
	}
	consent := newFakeConsentStore()
	consent.logs = append(consent.logs, models.ConsentLog{
		StudentID:   student.ID,
		ConsentType: models.ConsentTypePeers,
		Action:      models.ConsentGranted,
	})
	svc := NewAccountService(newFakeStudentStore(student), results, consent)

	doc, err := svc.ExportData(context.Background(), student.ID)

	require.NoError(t, err)
	assert.Equal(t, student.ID, doc.Student.ID)
	require.Len(t, doc.Records, 1)
	require.Len(t, doc.Records[0].Subjects, 1)
	require.Len(t, doc.ConsentLog, 1)
	assert.False(t, doc.ExportedAt.IsZero())
}

func TestDeleteAccount_FullFlow(t *testing.T) {
	student := testStudent("00112345", true)
	students := newFakeStudentStore(student)
	consent := newFakeConsentStore()
	svc := NewAccountService(students, newFakeResultsStore(), consent)

	err := svc.DeleteAccount(context.Background(), student.ID, &dto.DeleteAccountRequest{
		EnrollmentNo: "00112345",
		Reason:       strPtr("leaving the platform"),
	})

	require.NoError(t, err)

	// The profile is gone but the audit entry survives, verified.
	_, err = students.GetByID(context.Background(), student.ID)
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))
	require.Len(t, consent.deletionLogs, 1)
	for _, entry := range consent.deletionLogs {
		assert.Equal(t, student.ID, entry.StudentID)
		assert.Equal(t, "00112345", entry.EnrollmentNo)
		assert.Equal(t, "leaving the platform", entry.Reason)
		require.NotNil(t, entry.VerifiedAt)
	}
}

func TestDeleteAccount_RequiresMatchingEnrollment(t *testing.T) {
	student := testStudent("00112345", true)
	students := newFakeStudentStore(student)
	consent := newFakeConsentStore()
	svc := NewAccountService(students, newFakeResultsStore(), consent)

	err := svc.DeleteAccount(context.Background(), student.ID, &dto.DeleteAccountRequest{
		EnrollmentNo: "00199999",
	})

	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	assert.Empty(t, consent.deletionLogs, "no audit entry for a refused deletion")
	_, err = students.GetByID(context.Background(), student.ID)
	assert.NoError(t, err, "profile must survive a refused deletion")
}

func TestDeleteAccount_AuditWrittenBeforeDelete(t *testing.T) {
	student := testStudent("00112345", true)
	students := newFakeStudentStore(student)
	consent := newFakeConsentStore()
	failing := &failingDeleteStore{fakeStudentStore: students}
	svc := NewAccountService(failing, newFakeResultsStore(), consent)

	err := svc.DeleteAccount(context.Background(), student.ID, &dto.DeleteAccountRequest{
		EnrollmentNo: "00112345",
	})

	require.Error(t, err)
	// The audit entry was written first; the profile is intact.
	assert.Len(t, consent.deletionLogs, 1)
	_, getErr := students.GetByID(context.Background(), student.ID)
	assert.NoError(t, getErr)
}

func TestDeleteAccount_DefaultReason(t *testing.T) {
	student := testStudent("00112345", true)
	consent := newFakeConsentStore()
	svc := NewAccountService(newFakeStudentStore(student), newFakeResultsStore(), consent)

	err := svc.DeleteAccount(context.Background(), student.ID, &dto.DeleteAccountRequest{
		EnrollmentNo: "00112345",
	})

	require.NoError(t, err)
	for _, entry := range consent.deletionLogs {
		assert.Equal(t, "user requested", entry.Reason)
	}
}

type failingDeleteStore struct {
	*fakeStudentStore
}

func (f *failingDeleteStore) Delete(context.Context, uuid.UUID) error {
	return errors.New("connection reset")
}
