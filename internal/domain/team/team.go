// Package team - value types shared by the roster registry and the engine.
package team

import "strings"

// Platform is a game platform a replay account can live on.
type Platform string

const (
	PlatformSteam Platform = "steam"
	PlatformXbox  Platform = "xbox"
	PlatformPS4   Platform = "ps4"
	PlatformPS5   Platform = "ps5"
	PlatformEpic  Platform = "epic"
)

// ParsePlatform maps a user-supplied platform name onto a Platform.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformSteam, PlatformXbox, PlatformPS4, PlatformPS5, PlatformEpic:
		return p, true
	}
	return "", false
}

// Account is one linked platform identity. Identity is value equality on
// the (Platform, ID) pair.
type Account struct {
	Platform Platform `json:"platform"`
	ID       string   `json:"id"`
}

// Member is a rostered Discord member together with their linked accounts.
type Member struct {
	DiscordID string
	Name      string
	Accounts  []Account
}

// SteamIDs returns the member's steam ids. Only steam accounts can be used
// as the uploader filter on the replay service.
func (m Member) SteamIDs() []string {
	var ids []string
	for _, a := range m.Accounts {
		if a.Platform == PlatformSteam {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Team is a franchise team backed by a Discord role.
type Team struct {
	RoleID string
	Name   string // role name minus the trailing "(TAG)"
	Tag    string
}
