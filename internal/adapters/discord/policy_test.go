package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func interactionWith(roles []string, perms int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "u1"},
				Roles:       roles,
				Permissions: perms,
			},
		},
	}
}

func TestIsPrivilegedConfiguredRole(t *testing.T) {
	SetAdminRoles([]string{"r-admin"})
	defer SetAdminRoles(nil)

	if !IsPrivileged(interactionWith([]string{"r-other", "r-admin"}, 0)) {
		t.Fatal("member with configured role should be privileged")
	}
	if IsPrivileged(interactionWith([]string{"r-other"}, 0)) {
		t.Fatal("member without the role should not be privileged")
	}
}

func TestIsPrivilegedAdministratorBit(t *testing.T) {
	SetAdminRoles(nil)

	if !IsPrivileged(interactionWith(nil, discordgo.PermissionAdministrator)) {
		t.Fatal("Administrator permission should be privileged")
	}
}

func TestIsPrivilegedNoMember(t *testing.T) {
	SetAdminRoles([]string{"r-admin"})
	defer SetAdminRoles(nil)

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	if IsPrivileged(i) {
		t.Fatal("DM interaction without a member should not be privileged")
	}
}

func TestSetAdminRolesReplacesSet(t *testing.T) {
	SetAdminRoles([]string{"r-old"})
	SetAdminRoles([]string{"r-new"})
	defer SetAdminRoles(nil)

	if IsPrivileged(interactionWith([]string{"r-old"}, 0)) {
		t.Fatal("stale role survived a reconfigure")
	}
	if !IsPrivileged(interactionWith([]string{"r-new"}, 0)) {
		t.Fatal("new role not honored")
	}
}
