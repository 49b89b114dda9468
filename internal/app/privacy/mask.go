// Package privacy implements the identity masking policy and the
// consent gate. Everything here is a pure function over profile state;
// the gate must be re-evaluated on every request so a revoked consent is
// honored by the very next read.
package privacy

import (
	"strings"

	"github.com/peerlist/peerlist-backend/internal/app/models"
)

// MaskedIdentity is what a viewer is permitted to see of a subject
// student's identity.
type MaskedIdentity struct {
	DisplayName    string `json:"displayName"`
	ShowAvatar     bool   `json:"showAvatar"`
	AvatarFallback string `json:"avatarFallback"`
	AvatarColor    int    `json:"avatarColor"`
}

// MaskIdentity produces the identity a viewer may see for the given display
// mode. Output is deterministic for fixed inputs: the UI derives a stable
// avatar color from the display name, so two renders of the same student
// must be byte-identical.
//
// The pseudonym is derived only from the enrollment number, never from the
// real name, so a misconfigured fallback path cannot leak identity.
func MaskIdentity(mode models.DisplayMode, enrollmentNo string, realName *string) MaskedIdentity {
	masked := maskIdentity(mode, enrollmentNo, realName)
	masked.AvatarColor = AvatarColorIndex(masked.DisplayName)
	return masked
}

func maskIdentity(mode models.DisplayMode, enrollmentNo string, realName *string) MaskedIdentity {
	switch mode {
	case models.DisplayModeAnonymous:
		return MaskedIdentity{
			DisplayName:    "Anonymous",
			ShowAvatar:     false,
			AvatarFallback: "Anon",
		}

	case models.DisplayModePseudonymous:
		pseudonym := Pseudonym(enrollmentNo)
		return MaskedIdentity{
			DisplayName:    pseudonym,
			ShowAvatar:     false,
			AvatarFallback: firstRunes(pseudonym, 2),
		}

	case models.DisplayModeVisible:
		if realName == nil || *realName == "" {
			return MaskedIdentity{
				DisplayName:    "Student",
				ShowAvatar:     true,
				AvatarFallback: "ST",
			}
		}
		return MaskedIdentity{
			DisplayName:    *realName,
			ShowAvatar:     true,
			AvatarFallback: strings.ToUpper(firstRunes(*realName, 2)),
		}

	default:
		return MaskedIdentity{
			DisplayName:    "Student",
			ShowAvatar:     false,
			AvatarFallback: "ST",
		}
	}
}

// Pseudonym derives the deterministic pseudonym from an enrollment number,
// e.g. "0123456789" becomes "Student-6789".
func Pseudonym(enrollmentNo string) string {
	return "Student-" + lastRunes(enrollmentNo, 4)
}

// avatarPalette mirrors the number of color slots the client renders.
const avatarPalette = 8

// AvatarColorIndex deterministically picks a palette slot for a display
// name, so the same student gets the same avatar color across sessions.
func AvatarColorIndex(displayName string) int {
	sum := 0
	for _, r := range displayName {
		sum += int(r)
	}
	return sum % avatarPalette
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
