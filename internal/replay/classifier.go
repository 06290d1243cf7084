// Package replay decides what a raw replay record represents: whether it is
// a complete game, which named sides played it, and which recorded side a
// franchise roster was on. Everything here is a pure function over the API
// record so the rules stay testable without a live service.
package replay

import (
	"math/rand"
	"strings"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
)

// Side is one of the two recorded sides of a replay.
type Side string

const (
	SideBlue   Side = "blue"
	SideOrange Side = "orange"
	SideNone   Side = ""
)

// Other flips blue and orange.
func (s Side) Other() Side {
	switch s {
	case SideBlue:
		return SideOrange
	case SideOrange:
		return SideBlue
	}
	return SideNone
}

// A game shorter than this is a warmup or a disconnect, not a series game.
const minFullGameSeconds = 300

// IsFull reports whether a record is a complete game: at least five minutes
// long, a decided score, and at least one player present at kickoff.
// A record with no duration field decodes to 0 and is never full.
func IsFull(r ballchasing.Replay) bool {
	if r.Duration < minFullGameSeconds {
		return false
	}
	if r.Blue.Goals == r.Orange.Goals {
		return false
	}
	for _, p := range r.Blue.Players {
		if p.StartTime == 0 {
			return true
		}
	}
	for _, p := range r.Orange.Players {
		if p.StartTime == 0 {
			return true
		}
	}
	return false
}

// SideInfo is the human-facing view of one side.
type SideInfo struct {
	Name    string
	Players []string
}

// Teams holds both sides' display names and player names.
type Teams struct {
	Blue   SideInfo
	Orange SideInfo
}

// TeamsOf extracts display names and player lists, defaulting the names to
// the side colors when the uploader never set them.
func TeamsOf(r ballchasing.Replay) Teams {
	return Teams{
		Blue:   sideInfo(r.Blue, "Blue"),
		Orange: sideInfo(r.Orange, "Orange"),
	}
}

func sideInfo(s ballchasing.Side, fallback string) SideInfo {
	info := SideInfo{Name: s.Name}
	if info.Name == "" {
		info.Name = fallback
	}
	for _, p := range s.Players {
		info.Players = append(info.Players, p.Name)
	}
	return info
}

// IsMatch reports whether a record is a full game between the descriptor's
// two teams. Side names are compared case-insensitively as substrings of
// the reported team names, order-agnostic: home may be blue or orange.
func IsMatch(m match.Match, r ballchasing.Replay) bool {
	if !IsFull(r) {
		return false
	}
	t := TeamsOf(r)
	blue := strings.ToLower(t.Blue.Name)
	orange := strings.ToLower(t.Orange.Name)
	home := strings.ToLower(m.Home)
	away := strings.ToLower(m.Away)

	homeFound := strings.Contains(home, blue) || strings.Contains(home, orange)
	awayFound := strings.Contains(away, blue) || strings.Contains(away, orange)
	return homeFound && awayFound
}

// HomeSide picks which recorded side is the descriptor's home team, by the
// same substring rule as IsMatch. When neither side name matches, home
// defaults to orange, which mirrors the reporting convention of uploaders
// naming only the opposing side.
func HomeSide(m match.Match, r ballchasing.Replay) Side {
	blue := strings.ToLower(TeamsOf(r).Blue.Name)
	if blue != "" && strings.Contains(strings.ToLower(m.Home), blue) {
		return SideBlue
	}
	return SideOrange
}

// AccountSide scans both sides for an exact (platform, id) match and
// returns SideNone when the account played in neither.
func AccountSide(acc team.Account, r ballchasing.Replay) Side {
	if sideHasAccount(r.Blue, acc) {
		return SideBlue
	}
	if sideHasAccount(r.Orange, acc) {
		return SideOrange
	}
	return SideNone
}

func sideHasAccount(s ballchasing.Side, acc team.Account) bool {
	for _, p := range s.Players {
		if p.ID.Platform == string(acc.Platform) && p.ID.ID == acc.ID {
			return true
		}
	}
	return false
}

// FranchiseSide resolves which recorded side a franchise team was on.
//
// Primary signal: the team's canonical name contained in exactly one side
// name. Fallback: the first roster account found on either side. When the
// roster is exhausted without a hit the side is a uniform coin flip on rng
// and guessed is true; callers must treat that result as a guess and say
// so wherever they surface it.
func FranchiseSide(teamName string, roster []team.Member, r ballchasing.Replay, rng *rand.Rand) (side Side, guessed bool) {
	name := strings.ToLower(teamName)
	isBlue := r.Blue.Name != "" && strings.Contains(strings.ToLower(r.Blue.Name), name)
	isOrange := r.Orange.Name != "" && strings.Contains(strings.ToLower(r.Orange.Name), name)
	if isBlue != isOrange {
		if isBlue {
			return SideBlue, false
		}
		return SideOrange, false
	}

	for _, member := range roster {
		for _, acc := range member.Accounts {
			if s := AccountSide(acc, r); s != SideNone {
				return s, false
			}
		}
	}

	if rng.Intn(2) == 0 {
		return SideBlue, true
	}
	return SideOrange, true
}

// Winner is the side with more goals. Full replays never tie, so for them
// this is always decisive.
func Winner(r ballchasing.Replay) Side {
	if r.Blue.Goals > r.Orange.Goals {
		return SideBlue
	}
	return SideOrange
}
