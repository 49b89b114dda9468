package dto

import (
	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// UpdateConsentRequest carries the consent/settings fields a student may
// change. Absent fields are left untouched; the update is a single atomic
// write.
type UpdateConsentRequest struct {
	ConsentAnalytics *bool   `json:"consentAnalytics,omitempty"`
	ConsentRankboard *bool   `json:"consentRankboard,omitempty"`
	MarksVisibility  *bool   `json:"marksVisibility,omitempty"`
	DisplayMode      *string `json:"displayMode,omitempty" binding:"omitempty,oneof=anonymous pseudonymous visible"`
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateConsentRequest) IsEmpty() bool {
	return r.ConsentAnalytics == nil && r.ConsentRankboard == nil &&
		r.MarksVisibility == nil && r.DisplayMode == nil
}

// SettingsResponse returns the profile's consent state together with the
// append-only consent history.
type SettingsResponse struct {
	Student        *models.Student     `json:"student"`
	ConsentHistory []models.ConsentLog `json:"consentHistory"`
}
