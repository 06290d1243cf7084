// internal/engine/results.go
//
// Reads back what is already filed in the season hierarchy: prior reports
// of a match, and win/loss tallies per match day.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/replay"
)

// SeriesResult is one series found filed under the season group.
type SeriesResult struct {
	GroupID  string
	Opponent string
	Wins     int
	Losses   int
}

// Summary renders the canonical series line for the given team.
func (r SeriesResult) Summary(teamName string) string {
	return seriesSummary(teamName, r.Opponent, r.Wins, r.Losses)
}

// Record renders a compact "2-1 W" style score.
func (r SeriesResult) Record() string {
	switch {
	case r.Wins == 0 && r.Losses == 0:
		return "(Not Reported)"
	case r.Wins > r.Losses:
		return fmt.Sprintf("%d-%d W", r.Wins, r.Losses)
	case r.Losses > r.Wins:
		return fmt.Sprintf("%d-%d L", r.Wins, r.Losses)
	default:
		return fmt.Sprintf("%d-%d T", r.Wins, r.Losses)
	}
}

// CheckReported looks for prior reports of the match: children of the match
// type's folder whose names carry the match's deterministic prefix, scored
// from the replays filed inside them. An empty result means not reported.
func (e *Engine) CheckReported(ctx context.Context, topGroup string, m match.Match, teamName string, roster []team.Member) ([]SeriesResult, error) {
	return e.folderResults(ctx, topGroup, m.Type.Folder(), m.FolderPrefix(), teamName, roster)
}

// EnsureUnreported returns an *AlreadyReportedError when the match already
// has a filed series against the same opponent.
func (e *Engine) EnsureUnreported(ctx context.Context, topGroup string, m match.Match, teamName string, roster []team.Member) error {
	results, err := e.CheckReported(ctx, topGroup, m, teamName, roster)
	if err != nil {
		return err
	}
	for _, r := range results {
		if strings.EqualFold(r.Opponent, m.Away) {
			return &AlreadyReportedError{
				GroupID:  r.GroupID,
				Opponent: r.Opponent,
				Summary:  r.Summary(teamName),
			}
		}
	}
	return nil
}

// TeamResults tallies a team's filed league series for one match day.
func (e *Engine) TeamResults(ctx context.Context, topGroup string, day int, teamName string, roster []team.Member) ([]SeriesResult, error) {
	m := match.Match{Day: day, Type: match.RegularSeason}
	return e.folderResults(ctx, topGroup, m.Type.Folder(), m.FolderPrefix(), teamName, roster)
}

// SeasonResults tallies every filed league series of the season, across all
// match days.
func (e *Engine) SeasonResults(ctx context.Context, topGroup, teamName string, roster []team.Member) ([]SeriesResult, error) {
	return e.folderResults(ctx, topGroup, match.RegularSeason.Folder(), "MD", teamName, roster)
}

func (e *Engine) folderResults(ctx context.Context, topGroup, typeFolder, prefix, teamName string, roster []team.Member) ([]SeriesResult, error) {
	typeID, err := e.findChild(ctx, topGroup, typeFolder)
	if err != nil {
		return nil, fmt.Errorf("listing children of group %q: %w", topGroup, err)
	}
	if typeID == "" {
		return nil, nil
	}

	page, err := e.svc.ListGroups(ctx, typeID, "")
	if err != nil {
		return nil, fmt.Errorf("listing children of group %q: %w", typeID, err)
	}

	var results []SeriesResult
	for _, g := range page.List {
		// The prefix must end at a word boundary so a 1/9 scrim does not
		// pick up an 11/9 folder, nor 1/1 a 1/10 one.
		if !strings.HasPrefix(g.Name, prefix+" ") {
			continue
		}
		wins, losses, err := e.scoreGroupReplays(ctx, g.ID, teamName, roster)
		if err != nil {
			e.log.Warn().Err(err).Str("group", g.ID).Msg("could not score filed series")
			continue
		}
		if wins == 0 && losses == 0 {
			continue
		}
		results = append(results, SeriesResult{
			GroupID:  g.ID,
			Opponent: opponentFromFolder(g.Name),
			Wins:     wins,
			Losses:   losses,
		})
	}
	return results, nil
}

// scoreGroupReplays replays the series score from a filed folder, resolving
// the franchise's side per replay.
func (e *Engine) scoreGroupReplays(ctx context.Context, groupID, teamName string, roster []team.Member) (wins, losses int, err error) {
	page, err := e.svc.ReplaysInGroup(ctx, groupID)
	if err != nil {
		return 0, 0, err
	}
	for _, r := range page.List {
		side, guessed := replay.FranchiseSide(teamName, roster, r, e.rng)
		if guessed {
			e.log.Warn().Str("replay", r.ID).Str("team", teamName).
				Msg("no identifying signal for franchise side, coin flip")
		}
		if replay.Winner(r) == side {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses, nil
}

// opponentFromFolder recovers the away team from a "<prefix> vs <Team>"
// folder name.
func opponentFromFolder(name string) string {
	if i := strings.LastIndex(name, " vs "); i >= 0 {
		return name[i+len(" vs "):]
	}
	return ""
}
