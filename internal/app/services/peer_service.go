package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/app/privacy"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

// PeerService serves the consent-gated peer directory and peer dashboards.
// Every gate is evaluated against profiles read within the same request;
// a revoked consent takes effect on the very next call.
type PeerService struct {
	studentStore StudentStore
	resultsStore ResultsStore
}

// NewPeerService creates a new peer service instance
func NewPeerService(studentStore StudentStore, resultsStore ResultsStore) *PeerService {
	return &PeerService{
		studentStore: studentStore,
		resultsStore: resultsStore,
	}
}

// GetDirectory lists the requester's cohort peers who have opted into marks
// sharing. The requester must have opted in themselves, and the cohort must
// clear the minimum disclosure size; otherwise the listing is empty, never
// partially filled.
func (s *PeerService) GetDirectory(ctx context.Context, requesterID uuid.UUID, page, pageSize int) (*dto.PeerDirectoryResponse, error) {
	requester, err := s.studentStore.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !privacy.CanListPeers(requester) {
		return nil, apperrors.NewConsentDeniedError("peer directory requires your own marks sharing opt-in")
	}

	cohort, ok := models.CohortOf(requester)
	if !ok {
		return emptyDirectory(page, pageSize), nil
	}

	count, err := s.studentStore.CountCohortPeersVisible(ctx, cohort)
	if err != nil {
		return nil, fmt.Errorf("error counting cohort peers: %w", err)
	}
	if !privacy.CohortDisclosable(count) {
		return emptyDirectory(page, pageSize), nil
	}

	offset := uint64((page - 1) * pageSize)
	peers, err := s.studentStore.ListCohortPeersVisible(ctx, cohort, requesterID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing cohort peers: %w", err)
	}

	summaries := make([]dto.PeerSummary, 0, len(peers))
	for _, peer := range peers {
		summaries = append(summaries, dto.PeerSummary{
			ID:       peer.ID,
			Identity: privacy.MaskIdentity(peer.DisplayMode, peer.EnrollmentNo, peer.Name),
			Batch:    peer.Batch,
			Branch:   peer.Branch,
			College:  peer.College,
		})
	}

	// The count query includes the requester; the listing excludes them.
	totalItems := int64(count - 1)
	if totalItems < 0 {
		totalItems = 0
	}

	return &dto.PeerDirectoryResponse{
		Peers: summaries,
		Pagination: dto.PaginationInfo{
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(totalItems) / float64(pageSize))),
			PageSize:    pageSize,
			TotalItems:  totalItems,
		},
	}, nil
}

// GetPeerDashboard returns the masked identity and full metrics of one peer
// under mutual consent. The gate is checked before any aggregation work so
// a denied request never touches the target's records. Denial and absence
// are distinct outcomes; a denial must never be downgraded to a not-found.
func (s *PeerService) GetPeerDashboard(ctx context.Context, requesterID, targetID uuid.UUID) (*dto.PeerDashboardResponse, error) {
	if requesterID == targetID {
		return nil, apperrors.NewBadRequestError("use the own dashboard endpoint for your own results")
	}

	requester, err := s.studentStore.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	target, err := s.studentStore.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !privacy.CanViewPeer(requester, target) {
		return nil, apperrors.NewConsentDeniedError("marks sharing consent is not mutual")
	}

	records, err := s.resultsStore.GetRecordsWithSubjects(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving peer records: %w", err)
	}

	semesters, overall := computeStats(records, true)

	return &dto.PeerDashboardResponse{
		ID:        target.ID,
		Identity:  privacy.MaskIdentity(target.DisplayMode, target.EnrollmentNo, target.Name),
		Batch:     target.Batch,
		Branch:    target.Branch,
		College:   target.College,
		Semesters: semesters,
		Overall:   overall,
	}, nil
}

func emptyDirectory(page, pageSize int) *dto.PeerDirectoryResponse {
	return &dto.PeerDirectoryResponse{
		Peers: []dto.PeerSummary{},
		Pagination: dto.PaginationInfo{
			CurrentPage: page,
			TotalPages:  0,
			PageSize:    pageSize,
			TotalItems:  0,
		},
	}
}
