package dto

import (
	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/privacy"
)

// RankEntry is one rankboard row. Identity is masked under the owner's
// display mode, exactly as in the peer directory.
type RankEntry struct {
	Rank     int                    `json:"rank" example:"1"`
	ID       uuid.UUID              `json:"id"`
	Identity privacy.MaskedIdentity `json:"identity"`
	Batch    *string                `json:"batch,omitempty"`
	Branch   *string                `json:"branch,omitempty"`
	College  *string                `json:"college,omitempty"`
	CGPA     float64                `json:"cgpa" example:"9.12"`
}

// RankboardResponse is the cohort leaderboard.
type RankboardResponse struct {
	Entries []RankEntry `json:"entries"`
}
