package dto

import (
	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/privacy"
)

// PeerSummary is one directory entry: masked identity plus coarse profile
// fields only. Enrollment numbers and per-subject marks never appear here;
// subject-level data is exposed solely by the peer dashboard.
type PeerSummary struct {
	ID       uuid.UUID               `json:"id"`
	Identity privacy.MaskedIdentity  `json:"identity"`
	Batch    *string                 `json:"batch,omitempty" example:"2022"`
	Branch   *string                 `json:"branch,omitempty" example:"CSE"`
	College  *string                 `json:"college,omitempty" example:"MAIT"`
}

// PeerDirectoryResponse lists the requester's opted-in cohort.
type PeerDirectoryResponse struct {
	Peers      []PeerSummary  `json:"peers"`
	Pagination PaginationInfo `json:"pagination"`
}

// PeerDashboardResponse is the mutual-consent view of one peer: masked
// identity, coarse profile fields, and full subject-level stats.
type PeerDashboardResponse struct {
	ID        uuid.UUID              `json:"id"`
	Identity  privacy.MaskedIdentity `json:"identity"`
	Batch     *string                `json:"batch,omitempty"`
	Branch    *string                `json:"branch,omitempty"`
	College   *string                `json:"college,omitempty"`
	Semesters []SemesterStats        `json:"semesters"`
	Overall   OverallStats           `json:"overall"`
}
