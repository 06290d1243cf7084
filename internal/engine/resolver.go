// internal/engine/resolver.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/replay"
)

// Resolution is a successful replay search outcome.
type Resolution struct {
	ReplayIDs []string // newest first, the order the service returned them
	HomeWins  int
	AwayWins  int
	Summary   string // "**Home** 2 - 1 **Away**"
	Winner    string // one of the team names, empty on a tied series
}

type uploaderQuery struct {
	memberIdx int
	steamID   string
}

// FindMatchReplays searches the roster members' recent private uploads for
// the games of the given match and aggregates the series score.
//
// invokerID is queried first when it belongs to a roster member, since the
// reporting player most often uploaded the replays. In normal mode the scan
// stops at the first account that yields any matching replay; in deep mode
// every account is scanned concurrently and the largest set wins, with ties
// broken by roster order.
//
// A roster with no usable steam accounts, or one whose accounts yield
// nothing, returns ErrNoReplays. Individual query failures are logged and
// treated as empty pages: partial data beats no answer.
func (e *Engine) FindMatchReplays(ctx context.Context, m match.Match, roster []team.Member, invokerID string, deep bool) (*Resolution, error) {
	roster = invokerFirst(roster, invokerID)

	var queries []uploaderQuery
	for i, member := range roster {
		for _, steamID := range member.SteamIDs() {
			queries = append(queries, uploaderQuery{memberIdx: i, steamID: steamID})
		}
	}
	if len(queries) == 0 {
		return nil, ErrNoReplays
	}

	// Let the service's auto-upload pipeline catch up with a game that just
	// ended before the first query goes out.
	if err := wait(ctx, e.opts.IngestDelay); err != nil {
		return nil, err
	}

	if deep {
		return e.deepSearch(ctx, m, queries)
	}

	for _, q := range queries {
		res := e.searchUploader(ctx, m, q.steamID)
		if res != nil {
			return res, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return nil, ErrNoReplays
}

// deepSearch queries every uploader account and keeps the largest matching
// replay set. Earlier roster positions win ties, so the result is the same
// one the sequential scan would have preferred.
func (e *Engine) deepSearch(ctx context.Context, m match.Match, queries []uploaderQuery) (*Resolution, error) {
	results := make([]*Resolution, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.DeepSearchLimit)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = e.searchUploader(gctx, m, q.steamID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var best *Resolution
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || len(r.ReplayIDs) > len(best.ReplayIDs) {
			best = r
		}
	}
	if best == nil {
		return nil, ErrNoReplays
	}
	return best, nil
}

// searchUploader runs one search query keyed by uploader and scores the
// page. A request failure or an empty result both come back as nil.
func (e *Engine) searchUploader(ctx context.Context, m match.Match, steamID string) *Resolution {
	page, err := e.svc.SearchReplays(ctx, ballchasing.SearchFilter{
		Playlist: "private",
		Uploader: steamID,
		Count:    m.Type.SearchCount(),
		SortBy:   "created",
		SortDir:  "desc",
	})
	if err != nil {
		e.log.Warn().Err(err).Str("uploader", steamID).Msg("replay search failed, skipping account")
		return nil
	}
	return scorePage(m, page)
}

// scorePage filters a result page down to the match's games and tallies the
// series. Returns nil when no record matched.
func scorePage(m match.Match, page *ballchasing.ReplayPage) *Resolution {
	res := &Resolution{}
	for _, r := range page.List {
		if !replay.IsMatch(m, r) {
			continue
		}
		res.ReplayIDs = append(res.ReplayIDs, r.ID)

		home := replay.HomeSide(m, r)
		homeGoals := sideGoals(r, home)
		awayGoals := sideGoals(r, home.Other())
		// Strict compare: a tied game counts for the away side. Full
		// replays never tie, so this only shapes degenerate data.
		if homeGoals > awayGoals {
			res.HomeWins++
		} else {
			res.AwayWins++
		}
	}
	if len(res.ReplayIDs) == 0 {
		return nil
	}

	res.Summary = seriesSummary(m.Home, m.Away, res.HomeWins, res.AwayWins)
	if res.HomeWins > res.AwayWins {
		res.Winner = m.Home
	} else if res.AwayWins > res.HomeWins {
		res.Winner = m.Away
	}
	return res
}

func sideGoals(r ballchasing.Replay, s replay.Side) int {
	if s == replay.SideBlue {
		return r.Blue.Goals
	}
	return r.Orange.Goals
}

func seriesSummary(home, away string, homeWins, awayWins int) string {
	return fmt.Sprintf("**%s** %d - %d **%s**", home, homeWins, awayWins, away)
}

// invokerFirst moves the invoking member to the front of the roster so the
// most likely uploader gets queried first.
func invokerFirst(roster []team.Member, invokerID string) []team.Member {
	if invokerID == "" {
		return roster
	}
	for i, member := range roster {
		if member.DiscordID == invokerID && i > 0 {
			reordered := make([]team.Member, 0, len(roster))
			reordered = append(reordered, member)
			reordered = append(reordered, roster[:i]...)
			reordered = append(reordered, roster[i+1:]...)
			return reordered
		}
	}
	return roster
}

// IsNoReplays reports whether err is the legitimate empty search result.
func IsNoReplays(err error) bool { return errors.Is(err, ErrNoReplays) }
