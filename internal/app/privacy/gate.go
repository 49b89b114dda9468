package privacy

import (
	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// MinCohortSize is the smallest (batch, branch, college) cohort for which
// directory and rankboard listings may be disclosed. Below it the result is
// empty rather than partially filled, so a lone opted-in student cannot be
// trivially de-anonymized.
const MinCohortSize = 2

// CanListPeers reports whether the requester may see the peer directory at
// all. Listing requires the requester's own marks-sharing opt-in; a student
// who shares nothing sees nothing.
func CanListPeers(requester *models.Student) bool {
	return requester != nil && requester.MarksVisibility
}

// CanViewPeer reports whether the requester may read the target's profile
// and subject-level marks. Consent is strictly mutual: a one-sided opt-in
// discloses nothing in either direction.
func CanViewPeer(requester, target *models.Student) bool {
	return requester != nil && target != nil &&
		requester.MarksVisibility && target.MarksVisibility
}

// RankboardEligible reports whether a student's CGPA may appear on the
// rankboard. The CGPA is a product of the analytics computation, so
// rankboard consent alone is not enough; both flags must be granted.
func RankboardEligible(s *models.Student) bool {
	return s != nil && s.ConsentAnalytics && s.ConsentRankboard
}

// CohortDisclosable reports whether a cohort-scoped listing with the given
// number of eligible students may be disclosed.
func CohortDisclosable(eligibleCount int) bool {
	return eligibleCount >= MinCohortSize
}
