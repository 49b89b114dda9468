package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/grading"
	"github.com/peerlist/peerlist-backend/internal/app/models"
	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/app/privacy"
	"github.com/peerlist/peerlist-backend/internal/pkg/apperrors"
)

// RankboardService builds the cohort leaderboard. Only students who granted
// both the analytics and the rankboard consent are ranked, and their CGPAs
// are recomputed through the same rounded per-term path the dashboard uses
// so the two surfaces can never disagree.
type RankboardService struct {
	studentStore StudentStore
	resultsStore ResultsStore
}

// NewRankboardService creates a new rankboard service instance
func NewRankboardService(studentStore StudentStore, resultsStore ResultsStore) *RankboardService {
	return &RankboardService{
		studentStore: studentStore,
		resultsStore: resultsStore,
	}
}

// GetRankboard returns the requester's cohort ranked by CGPA descending,
// ties broken deterministically by student id. The requester must be
// eligible themselves, and the eligible cohort must clear the minimum
// disclosure size; otherwise the board is empty rather than partial.
func (s *RankboardService) GetRankboard(ctx context.Context, requesterID uuid.UUID) (*dto.RankboardResponse, error) {
	requester, err := s.studentStore.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !privacy.RankboardEligible(requester) {
		return nil, apperrors.NewConsentDeniedError("rankboard requires both analytics and rankboard consent")
	}

	cohort, ok := models.CohortOf(requester)
	if !ok {
		return &dto.RankboardResponse{Entries: []dto.RankEntry{}}, nil
	}

	count, err := s.studentStore.CountCohortRankEligible(ctx, cohort)
	if err != nil {
		return nil, fmt.Errorf("error counting rank-eligible cohort: %w", err)
	}
	if !privacy.CohortDisclosable(count) {
		return &dto.RankboardResponse{Entries: []dto.RankEntry{}}, nil
	}

	students, err := s.studentStore.ListCohortRankEligible(ctx, cohort)
	if err != nil {
		return nil, fmt.Errorf("error listing rank-eligible cohort: %w", err)
	}

	entries := make([]dto.RankEntry, 0, len(students))
	for _, st := range students {
		records, err := s.resultsStore.GetRecordsWithSubjects(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving records for ranking: %w", err)
		}
		entries = append(entries, dto.RankEntry{
			ID:       st.ID,
			Identity: privacy.MaskIdentity(st.DisplayMode, st.EnrollmentNo, st.Name),
			Batch:    st.Batch,
			Branch:   st.Branch,
			College:  st.College,
			CGPA:     cgpaOf(records),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CGPA != entries[j].CGPA {
			return entries[i].CGPA > entries[j].CGPA
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &dto.RankboardResponse{Entries: entries}, nil
}

func cgpaOf(records []models.AcademicRecord) float64 {
	terms := make([]grading.TermAggregate, 0, len(records))
	for _, rec := range records {
		terms = append(terms, grading.AggregateTerm(rec.Subjects))
	}
	return grading.AggregateOverall(terms).CGPA
}
