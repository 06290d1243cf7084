// internal/adapters/discord/policy.go
// Minimal privilege check based on configured admin roles or Administrator permission.

package discord

import (
	"github.com/bwmarrin/discordgo"
)

var adminRoleID = map[string]struct{}{}

// SetAdminRoles installs the role IDs that count as privileged, replacing
// any previous set. Wired once at startup from the loaded config.
func SetAdminRoles(ids []string) {
	adminRoleID = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		adminRoleID[id] = struct{}{}
	}
}

// IsPrivileged returns true if the member has Administrator or one of the
// configured admin roles.
func IsPrivileged(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, r := range i.Member.Roles {
		if _, ok := adminRoleID[r]; ok {
			return true
		}
	}
	return false
}

// RequirePrivileged replies ephemeral and returns false if not privileged.
func RequirePrivileged(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if IsPrivileged(i) {
		return true
	}
	_ = SendEphemeral(s, i, "⛔ You don't have permission for this action.")
	return false
}
