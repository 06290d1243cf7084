// Package roster resolves team identity inside a guild: which registered
// team role a name or member refers to, and who is rostered on it with
// which linked accounts. Team roles are named "<Team Name> (TAG)".
package roster

import (
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
)

// rerr is a lightweight comparable error type.
type rerr string

func (e rerr) Error() string { return string(e) }

var (
	ErrNoTeam = rerr("team not found")
)

// Registry resolves teams and rosters against the settings store and the
// guild's role/member state.
type Registry struct {
	store *store.Store
}

func New(st *store.Store) *Registry {
	return &Registry{store: st}
}

// TeamName strips the trailing "(TAG)" from a role name.
func TeamName(roleName string) string {
	if strings.HasSuffix(roleName, ")") && strings.Contains(roleName, " (") {
		return roleName[:strings.LastIndex(roleName, " (")]
	}
	return roleName
}

// TeamTag extracts the tag between the trailing parens, or "".
func TeamTag(roleName string) string {
	if !strings.HasSuffix(roleName, ")") {
		return ""
	}
	i := strings.LastIndex(roleName, "(")
	if i < 0 {
		return ""
	}
	return roleName[i+1 : len(roleName)-1]
}

func toTeam(role *discordgo.Role) team.Team {
	return team.Team{
		RoleID: role.ID,
		Name:   TeamName(role.Name),
		Tag:    TeamTag(role.Name),
	}
}

// Teams lists the guild's registered teams, highest role first.
func (r *Registry) Teams(guild *discordgo.Guild) []team.Team {
	registered := map[string]bool{}
	for _, id := range r.store.TeamRoles(guild.ID) {
		registered[id] = true
	}

	var roles []*discordgo.Role
	for _, role := range guild.Roles {
		if registered[role.ID] {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Position > roles[j].Position })

	teams := make([]team.Team, len(roles))
	for i, role := range roles {
		teams[i] = toTeam(role)
	}
	return teams
}

// FindTeam matches a user-supplied name against the registered teams:
// case-insensitive substring of the team name, or exact tag match.
func (r *Registry) FindTeam(guild *discordgo.Guild, query string) (team.Team, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return team.Team{}, ErrNoTeam
	}
	for _, t := range r.Teams(guild) {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.EqualFold(t.Tag, q) {
			return t, nil
		}
	}
	return team.Team{}, ErrNoTeam
}

// MemberTeam returns the first registered team among the member's roles.
func (r *Registry) MemberTeam(guild *discordgo.Guild, member *discordgo.Member) (team.Team, error) {
	if member == nil {
		return team.Team{}, ErrNoTeam
	}
	held := map[string]bool{}
	for _, id := range member.Roles {
		held[id] = true
	}
	for _, t := range r.Teams(guild) {
		if held[t.RoleID] {
			return t, nil
		}
	}
	return team.Team{}, ErrNoTeam
}

// Roster lists the guild members holding the team's role, each with their
// linked accounts from the register.
func (r *Registry) Roster(guild *discordgo.Guild, t team.Team) []team.Member {
	var roster []team.Member
	for _, m := range guild.Members {
		if m.User == nil {
			continue
		}
		for _, roleID := range m.Roles {
			if roleID != t.RoleID {
				continue
			}
			roster = append(roster, team.Member{
				DiscordID: m.User.ID,
				Name:      m.User.Username,
				Accounts:  r.store.Accounts(m.User.ID),
			})
			break
		}
	}
	return roster
}
