// Package match holds the descriptor of a reported series: who played,
// which match day, and what kind of match it was.
package match

import (
	"fmt"
	"strings"
	"time"
)

// Type classifies a reported series. It drives both how many recent uploads
// get searched and which top-level folder the replays are filed under.
type Type int

const (
	RegularSeason Type = iota
	Scrim
	PostSeason
	PreSeason
)

// Folder is the name of the match type's folder on the replay service.
func (t Type) Folder() string {
	switch t {
	case Scrim:
		return "Scrims"
	case PostSeason:
		return "Post-Season"
	case PreSeason:
		return "Pre-Season"
	default:
		return "Regular Season"
	}
}

func (t Type) String() string { return t.Folder() }

// SearchCount is how many recent uploads to pull per search query. Scrim
// nights pile up far more private games than a league series does.
func (t Type) SearchCount() int {
	if t == Scrim {
		return 100
	}
	return 50
}

// ParseType maps user-facing spellings onto a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "regular season", "regular-season":
		return RegularSeason, nil
	case "scrim", "scrims":
		return Scrim, nil
	case "playoff", "playoffs", "postseason", "post-season":
		return PostSeason, nil
	case "preseason", "pre-season":
		return PreSeason, nil
	}
	return RegularSeason, fmt.Errorf("unknown match type %q", s)
}

// ScrimDay is the sentinel day for scrimmages, which are keyed by date
// rather than by match day number.
const ScrimDay = 0

// Match describes what is being searched for and where it gets filed.
// Home and Away compare case-insensitively everywhere; Home != Away is the
// caller's responsibility.
type Match struct {
	Home string
	Away string
	Day  int       // positive match day, or ScrimDay
	Date time.Time // calendar date, only used to name scrim folders
	Type Type
}

// FolderNames is the ordered folder path under the season's top-level group.
// The names are deterministic for a given match, so a second report of the
// same series resolves to the same folder instead of creating a sibling.
func (m Match) FolderNames() []string {
	return []string{m.Type.Folder(), m.folderName()}
}

func (m Match) folderName() string {
	return fmt.Sprintf("%s vs %s", m.FolderPrefix(), m.Away)
}

// FolderPrefix identifies this match's folder among its siblings: the
// zero-padded day for league play, "M/D" for scrims.
func (m Match) FolderPrefix() string {
	if m.Type == Scrim {
		return fmt.Sprintf("%d/%d", int(m.Date.Month()), m.Date.Day())
	}
	return fmt.Sprintf("MD %02d", m.Day)
}
