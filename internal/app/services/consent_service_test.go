package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

func waitForEvents(t *testing.T, store *fakeConsentStore, n int) []models.ConsentLog {
	t.Helper()
	events := make([]models.ConsentLog, 0, n)
	for len(events) < n {
		select {
		case ev := <-store.inserted:
			events = append(events, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d consent events, got %d", n, len(events))
		}
	}
	return events
}

func TestUpdateConsent_RejectsEmptyRequest(t *testing.T) {
	student := testStudent("00112345", false)
	svc := NewConsentService(newFakeStudentStore(student), newFakeConsentStore())

	_, err := svc.UpdateConsent(context.Background(), student.ID, &dto.UpdateConsentRequest{})

	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestUpdateConsent_RejectsUnknownDisplayMode(t *testing.T) {
	student := testStudent("00112345", false)
	svc := NewConsentService(newFakeStudentStore(student), newFakeConsentStore())

	_, err := svc.UpdateConsent(context.Background(), student.ID, &dto.UpdateConsentRequest{
		DisplayMode: strPtr("invisible"),
	})

	assert.True(t, errors.Is(err, apperrors.ErrInvalidDisplayMode))
}

func TestUpdateConsent_AppliesPartialUpdate(t *testing.T) {
	student := testStudent("00112345", false)
	student.ConsentAnalytics = true
	svc := NewConsentService(newFakeStudentStore(student), newFakeConsentStore())

	updated, err := svc.UpdateConsent(context.Background(), student.ID, &dto.UpdateConsentRequest{
		MarksVisibility: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, updated.MarksVisibility)
	assert.True(t, updated.ConsentAnalytics, "untouched field must survive")
}

func TestUpdateConsent_LogsOneEventPerChangedDimension(t *testing.T) {
	student := testStudent("00112345", false)
	store := newFakeConsentStore()
	svc := NewConsentService(newFakeStudentStore(student), store)

	_, err := svc.UpdateConsent(context.Background(), student.ID, &dto.UpdateConsentRequest{
		ConsentAnalytics: boolPtr(true),
		MarksVisibility:  boolPtr(true),
	})
	require.NoError(t, err)

	events := waitForEvents(t, store, 2)
	byType := map[models.ConsentType]models.ConsentAction{}
	for _, ev := range events {
		byType[ev.ConsentType] = ev.Action
	}
	assert.Equal(t, models.ConsentGranted, byType[models.ConsentTypeAnalytics])
	assert.Equal(t, models.ConsentGranted, byType[models.ConsentTypePeers])
}

func TestUpdateConsent_NoEventWhenValueUnchanged(t *testing.T) {
	before := testStudent("00112345", true)
	after := testStudent("00112345", true)
	after.ID = before.ID

	events := consentDiff(before, after)

	assert.Empty(t, events)
}

func TestConsentDiff_RevocationAndIdentity(t *testing.T) {
	before := testStudent("00112345", true)
	before.ConsentRankboard = true
	after := *before
	after.ConsentRankboard = false
	after.MarksVisibility = false
	after.DisplayMode = models.DisplayModeVisible

	events := consentDiff(before, &after)

	require.Len(t, events, 3)
	byType := map[models.ConsentType]models.ConsentAction{}
	for _, ev := range events {
		byType[ev.Type] = ev.Action
	}
	assert.Equal(t, models.ConsentRevoked, byType[models.ConsentTypeRankboard])
	assert.Equal(t, models.ConsentRevoked, byType[models.ConsentTypePeers])
	assert.Equal(t, models.ConsentGranted, byType[models.ConsentTypeIdentity])
}

func TestGetSettings_ReturnsProfileAndHistory(t *testing.T) {
	student := testStudent("00112345", true)
	store := newFakeConsentStore()
	store.logs = append(store.logs, models.ConsentLog{
		ID:          student.ID,
		StudentID:   student.ID,
		ConsentType: models.ConsentTypePeers,
		Action:      models.ConsentGranted,
	})
	svc := NewConsentService(newFakeStudentStore(student), store)

	resp, err := svc.GetSettings(context.Background(), student.ID)

	require.NoError(t, err)
	assert.Equal(t, student.ID, resp.Student.ID)
	require.Len(t, resp.ConsentHistory, 1)
	assert.Equal(t, models.ConsentTypePeers, resp.ConsentHistory[0].ConsentType)
}

func TestRevocation_TakesEffectOnNextRead(t *testing.T) {
	requester := testStudent("00112345", true)
	target := testStudent("00167890", true)
	students := newFakeStudentStore(requester, target)
	consentSvc := NewConsentService(students, newFakeConsentStore())
	peerSvc := NewPeerService(students, newFakeResultsStore())

	// Mutual consent holds initially.
	_, err := peerSvc.GetPeerDashboard(context.Background(), requester.ID, target.ID)
	require.NoError(t, err)

	// Target revokes; the very next peer read is denied.
	_, err = consentSvc.UpdateConsent(context.Background(), target.ID, &dto.UpdateConsentRequest{
		MarksVisibility: boolPtr(false),
	})
	require.NoError(t, err)

	_, err = peerSvc.GetPeerDashboard(context.Background(), requester.ID, target.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConsentDenied))
}
