package models

import (
	"time"

	"github.com/google/uuid"
)

// ConsentType identifies the consent dimension an audit entry refers to.
type ConsentType string

const (
	ConsentTypeAnalytics ConsentType = "analytics"
	ConsentTypeRankboard ConsentType = "rankboard"
	ConsentTypePeers     ConsentType = "peers"
	ConsentTypeIdentity  ConsentType = "identity"
)

// ConsentAction is the recorded action for a consent dimension.
type ConsentAction string

const (
	ConsentGranted ConsentAction = "granted"
	ConsentRevoked ConsentAction = "revoked"
)

// ConsentLog is an immutable audit entry based on the 'consent_logs' table.
// Append-only; removed only by full account erasure.
type ConsentLog struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	StudentID   uuid.UUID     `json:"studentId" db:"student_id"`
	ConsentType ConsentType   `json:"consentType" db:"consent_type"`
	Action      ConsentAction `json:"action" db:"action"`
	LoggedAt    time.Time     `json:"loggedAt" db:"logged_at"`
}

// DeletionLog is the account-deletion audit entry based on the
// 'deletion_logs' table. It carries no foreign key to students so the entry
// provably survives the deletion it records.
type DeletionLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	StudentID    uuid.UUID  `json:"studentId" db:"student_id"`
	EnrollmentNo string     `json:"enrollmentNo" db:"enrollment_no"`
	Reason       string     `json:"reason" db:"reason"`
	LoggedAt     time.Time  `json:"loggedAt" db:"logged_at"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty" db:"verified_at"`
}
