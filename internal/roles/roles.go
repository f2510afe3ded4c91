package roles

import (
	"strings"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

const (
	// StaffRole gates moderation commands and ticket channel visibility.
	StaffRole = "staff"
	// VerifiedRole gates self-service commands.
	VerifiedRole = "verified"
	// MembersRole is mentioned on routed emergency alerts.
	MembersRole = "members"

	// BroadcastFallback is used when a named role does not exist in the guild.
	BroadcastFallback = "@here"
)

// IsStaff reports whether the label set contains the staff role,
// case-insensitively. An empty set yields false, never an error.
func IsStaff(roleLabels []string) bool {
	return hasRole(roleLabels, StaffRole)
}

// IsVerified reports whether the label set contains the verified role.
func IsVerified(roleLabels []string) bool {
	return hasRole(roleLabels, VerifiedRole)
}

func hasRole(roleLabels []string, name string) bool {
	for _, label := range roleLabels {
		if strings.EqualFold(label, name) {
			return true
		}
	}
	return false
}

// Find returns the guild role with the given name, case-insensitively.
func Find(guild domain.Guild, name string) (domain.Role, bool) {
	for _, role := range guild.Roles {
		if strings.EqualFold(role.Name, name) {
			return role, true
		}
	}
	return domain.Role{}, false
}

// Mention returns the mention string for the named role, or the broadcast
// fallback when the guild has no such role.
func Mention(guild domain.Guild, name string) string {
	if role, ok := Find(guild, name); ok {
		return role.Mention()
	}
	return BroadcastFallback
}
