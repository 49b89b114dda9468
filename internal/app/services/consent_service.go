package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
	"github.com/peerlist/peerlist-backend/internal/pkg/logger"
)

// ConsentService handles settings reads and consent updates. Updates are a
// single atomic write; the audit events they generate are recorded
// asynchronously and never block or fail the update itself.
type ConsentService struct {
	studentStore StudentStore
	consentStore ConsentStore
}

// NewConsentService creates a new consent service instance
func NewConsentService(studentStore StudentStore, consentStore ConsentStore) *ConsentService {
	return &ConsentService{
		studentStore: studentStore,
		consentStore: consentStore,
	}
}

// GetSettings returns the student's current consent state together with the
// full append-only consent history, newest first.
func (s *ConsentService) GetSettings(ctx context.Context, studentID uuid.UUID) (*dto.SettingsResponse, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	history, err := s.consentStore.ListLogsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.SettingsResponse{
		Student:        student,
		ConsentHistory: history,
	}, nil
}

// UpdateConsent applies a partial consent/settings change atomically and
// logs one audit event per dimension that actually changed. Mutual
// visibility is re-evaluated from the stored flags on every later read, so
// a revocation here takes effect on the next request with no grace period.
func (s *ConsentService) UpdateConsent(ctx context.Context, studentID uuid.UUID, req *dto.UpdateConsentRequest) (*models.Student, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("no settings fields provided")
	}
	if req.DisplayMode != nil && !models.DisplayMode(*req.DisplayMode).IsValid() {
		return nil, apperrors.ErrInvalidDisplayMode
	}

	before, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	after, err := s.studentStore.UpdateConsent(ctx, studentID, req)
	if err != nil {
		return nil, err
	}

	events := consentDiff(before, after)
	if len(events) > 0 {
		// Detached from the request context: the update has already
		// committed and must not be reported as failed because an
		// audit insert was slow or lost.
		go s.recordEvents(context.Background(), studentID, events)
	}

	return after, nil
}

type consentEvent struct {
	Type   models.ConsentType
	Action models.ConsentAction
}

// consentDiff derives audit events from the before/after profile pair.
// Display-mode changes are logged on the identity dimension as a grant,
// since choosing a mode is an affirmative disclosure decision rather than
// a revocation of anything.
func consentDiff(before, after *models.Student) []consentEvent {
	var events []consentEvent

	if before.ConsentAnalytics != after.ConsentAnalytics {
		events = append(events, consentEvent{models.ConsentTypeAnalytics, actionFor(after.ConsentAnalytics)})
	}
	if before.ConsentRankboard != after.ConsentRankboard {
		events = append(events, consentEvent{models.ConsentTypeRankboard, actionFor(after.ConsentRankboard)})
	}
	if before.MarksVisibility != after.MarksVisibility {
		events = append(events, consentEvent{models.ConsentTypePeers, actionFor(after.MarksVisibility)})
	}
	if before.DisplayMode != after.DisplayMode {
		events = append(events, consentEvent{models.ConsentTypeIdentity, models.ConsentGranted})
	}

	return events
}

func actionFor(granted bool) models.ConsentAction {
	if granted {
		return models.ConsentGranted
	}
	return models.ConsentRevoked
}

func (s *ConsentService) recordEvents(ctx context.Context, studentID uuid.UUID, events []consentEvent) {
	for _, ev := range events {
		entry := &models.ConsentLog{
			ID:          uuid.New(),
			StudentID:   studentID,
			ConsentType: ev.Type,
			Action:      ev.Action,
			LoggedAt:    time.Now().UTC(),
		}
		if err := s.consentStore.InsertLog(ctx, entry); err != nil {
			logger.Error().Err(err).
				Str("studentId", studentID.String()).
				Str("consentType", string(ev.Type)).
				Str("action", string(ev.Action)).
				Msg("Failed to record consent event")
		}
	}
}
