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

func rankEligibleStudent(enrollment string) *models.Student {
	s := testStudent(enrollment, true)
	s.ConsentAnalytics = true
	s.ConsentRankboard = true
	return s
}

func TestGetRankboard_RequiresBothConsents(t *testing.T) {
	tests := []struct {
		name      string
		analytics bool
		rankboard bool
	}{
		{"analytics only", true, false},
		{"rankboard only", false, true},
		{"neither", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := testStudent("00112345", true)
			requester.ConsentAnalytics = tt.analytics
			requester.ConsentRankboard = tt.rankboard
			svc := NewRankboardService(newFakeStudentStore(requester), newFakeResultsStore())

			_, err := svc.GetRankboard(context.Background(), requester.ID)

			assert.True(t, errors.Is(err, apperrors.ErrConsentDenied))
		})
	}
}

func TestGetRankboard_SuppressesSmallCohort(t *testing.T) {
	requester := rankEligibleStudent("00112345")
	ineligible := testStudent("00167890", true)
	svc := NewRankboardService(newFakeStudentStore(requester, ineligible), newFakeResultsStore())

	resp, err := svc.GetRankboard(context.Background(), requester.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
}

func TestGetRankboard_RanksByCGPADescending(t *testing.T) {
	requester := rankEligibleStudent("00112345")
	second := rankEligibleStudent("00167890")
	third := rankEligibleStudent("00155555")

	results := newFakeResultsStore()
	// Requester: all O across 4 credits.
	results.records[requester.ID] = []models.AcademicRecord{
		testRecord(requester.ID, 1, testSubject("CS-101", 95, 4)),
	}
	// Second: 8.5 over semester one.
	results.records[second.ID] = []models.AcademicRecord{
		testRecord(second.ID, 1,
			testSubject("CS-101", 92, 4),
			testSubject("MA-101", 58, 4)),
	}
	// Third: no records, CGPA 0.
	svc := NewRankboardService(newFakeStudentStore(requester, second, third), results)

	resp, err := svc.GetRankboard(context.Background(), requester.ID)

	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, requester.ID, resp.Entries[0].ID)
	assert.InDelta(t, 10.0, resp.Entries[0].CGPA, 1e-9)
	assert.Equal(t, second.ID, resp.Entries[1].ID)
	assert.InDelta(t, 8.5, resp.Entries[1].CGPA, 1e-9)
	assert.Equal(t, 3, resp.Entries[2].Rank)
	assert.InDelta(t, 0.0, resp.Entries[2].CGPA, 1e-9)
}

func TestGetRankboard_TiesBreakByID(t *testing.T) {
	requester := rankEligibleStudent("00112345")
	other := rankEligibleStudent("00167890")
	svc := NewRankboardService(newFakeStudentStore(requester, other), newFakeResultsStore())

	resp, err := svc.GetRankboard(context.Background(), requester.ID)

	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, 2, resp.Entries[1].Rank)
	assert.True(t, resp.Entries[0].ID.String() < resp.Entries[1].ID.String())
}

func TestGetRankboard_RevocationExcludesOnNextRead(t *testing.T) {
	requester := rankEligibleStudent("00112345")
	second := rankEligibleStudent("00167890")
	third := rankEligibleStudent("00155555")
	students := newFakeStudentStore(requester, second, third)
	rankSvc := NewRankboardService(students, newFakeResultsStore())
	consentSvc := NewConsentService(students, newFakeConsentStore())

	resp, err := rankSvc.GetRankboard(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	// Third revokes rankboard consent; the very next board omits them.
	_, err = consentSvc.UpdateConsent(context.Background(), third.ID, &dto.UpdateConsentRequest{
		ConsentRankboard: boolPtr(false),
	})
	require.NoError(t, err)

	resp, err = rankSvc.GetRankboard(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	for _, e := range resp.Entries {
		assert.NotEqual(t, third.ID, e.ID)
	}
}

func TestGetRankboard_MasksIdentities(t *testing.T) {
	requester := rankEligibleStudent("00112345")
	anon := rankEligibleStudent("00167890")
	anon.DisplayMode = models.DisplayModeAnonymous
	svc := NewRankboardService(newFakeStudentStore(requester, anon), newFakeResultsStore())

	resp, err := svc.GetRankboard(context.Background(), requester.ID)

	require.NoError(t, err)
	names := map[uuid.UUID]string{}
	for _, e := range resp.Entries {
		names[e.ID] = e.Identity.DisplayName
	}
	assert.Equal(t, "Student-2345", names[requester.ID])
	assert.Equal(t, "Anonymous", names[anon.ID])
}
