package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
)

// filedTree fakes a season hierarchy with one reported MD 02 series.
func filedTree() *stubService {
	return &stubService{
		listGroups: func(parent, _ string) (*ballchasing.GroupPage, error) {
			switch parent {
			case "top":
				return &ballchasing.GroupPage{List: []ballchasing.Group{
					{ID: "rs", Name: "Regular Season"},
					{ID: "sc", Name: "Scrims"},
				}}, nil
			case "rs":
				return &ballchasing.GroupPage{List: []ballchasing.Group{
					{ID: "md2", Name: "MD 02 vs Beta"},
					{ID: "md1", Name: "MD 01 vs Gamma"},
				}}, nil
			case "sc":
				return &ballchasing.GroupPage{List: []ballchasing.Group{
					{ID: "sc119", Name: "11/9 vs Beta"},
					{ID: "sc110", Name: "1/10 vs Beta"},
				}}, nil
			}
			return &ballchasing.GroupPage{}, nil
		},
		replaysInGroup: func(groupID string) (*ballchasing.ReplayPage, error) {
			switch groupID {
			case "md2":
				return &ballchasing.ReplayPage{List: []ballchasing.Replay{
					seriesGame("g1", 3, 1),
					seriesGame("g2", 0, 2),
					seriesGame("g3", 4, 2),
				}}, nil
			case "md1":
				return &ballchasing.ReplayPage{List: []ballchasing.Replay{
					seriesGame("g4", 1, 2),
				}}, nil
			case "sc119", "sc110":
				return &ballchasing.ReplayPage{List: []ballchasing.Replay{
					seriesGame("g5", 2, 0),
				}}, nil
			}
			return &ballchasing.ReplayPage{}, nil
		},
	}
}

var alphaRoster = []team.Member{steamMember("d1", "111")}

func TestCheckReported(t *testing.T) {
	e := newTestEngine(t, filedTree())
	m := match.Match{Home: "Alpha", Away: "Beta", Day: 2, Type: match.RegularSeason}

	results, err := e.CheckReported(context.Background(), "top", m, "Alpha", alphaRoster)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	r := results[0]
	if r.Opponent != "Beta" || r.Wins != 2 || r.Losses != 1 {
		t.Fatalf("got %+v", r)
	}
	if r.Summary("Alpha") != "**Alpha** 2 - 1 **Beta**" {
		t.Fatalf("summary %q", r.Summary("Alpha"))
	}
	if r.Record() != "2-1 W" {
		t.Fatalf("record %q", r.Record())
	}
}

func TestCheckReportedEmptyHierarchy(t *testing.T) {
	e := newTestEngine(t, &stubService{})
	m := match.Match{Home: "Alpha", Away: "Beta", Day: 2, Type: match.RegularSeason}

	results, err := e.CheckReported(context.Background(), "top", m, "Alpha", alphaRoster)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("got %v from an empty tree", results)
	}
}

func TestEnsureUnreported(t *testing.T) {
	e := newTestEngine(t, filedTree())

	// same day, same opponent: blocked
	m := match.Match{Home: "Alpha", Away: "Beta", Day: 2, Type: match.RegularSeason}
	err := e.EnsureUnreported(context.Background(), "top", m, "Alpha", alphaRoster)
	var already *AlreadyReportedError
	if !errors.As(err, &already) {
		t.Fatalf("got %v, want AlreadyReportedError", err)
	}
	if already.GroupID != "md2" || already.Opponent != "Beta" {
		t.Fatalf("got %+v", already)
	}

	// same day, different opponent: fine
	m.Away = "Delta"
	if err := e.EnsureUnreported(context.Background(), "top", m, "Alpha", alphaRoster); err != nil {
		t.Fatal(err)
	}

	// different day: fine
	m = match.Match{Home: "Alpha", Away: "Beta", Day: 3, Type: match.RegularSeason}
	if err := e.EnsureUnreported(context.Background(), "top", m, "Alpha", alphaRoster); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureUnreportedScrimDateBoundaries(t *testing.T) {
	e := newTestEngine(t, filedTree())
	scrim := func(month, day int) match.Match {
		return match.Match{
			Home: "Alpha", Away: "Beta",
			Day:  match.ScrimDay,
			Date: time.Date(2026, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			Type: match.Scrim,
		}
	}

	// a 1/9 scrim must not collide with the filed 11/9 folder
	if err := e.EnsureUnreported(context.Background(), "top", scrim(1, 9), "Alpha", alphaRoster); err != nil {
		t.Fatal(err)
	}

	// nor a 1/1 scrim with the filed 1/10 one
	if err := e.EnsureUnreported(context.Background(), "top", scrim(1, 1), "Alpha", alphaRoster); err != nil {
		t.Fatal(err)
	}

	// the exact date is still blocked
	err := e.EnsureUnreported(context.Background(), "top", scrim(11, 9), "Alpha", alphaRoster)
	var already *AlreadyReportedError
	if !errors.As(err, &already) {
		t.Fatalf("got %v, want AlreadyReportedError", err)
	}
	if already.GroupID != "sc119" {
		t.Fatalf("got %+v", already)
	}
}

func TestTeamResults(t *testing.T) {
	e := newTestEngine(t, filedTree())

	results, err := e.TeamResults(context.Background(), "top", 1, "Alpha", alphaRoster)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Opponent != "Gamma" || results[0].Record() != "0-1 L" {
		t.Fatalf("got %+v", results[0])
	}
}

func TestSeasonResults(t *testing.T) {
	e := newTestEngine(t, filedTree())

	results, err := e.SeasonResults(context.Background(), "top", "Alpha", alphaRoster)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want both match days", len(results))
	}
}

func TestRecordStrings(t *testing.T) {
	if got := (SeriesResult{}).Record(); got != "(Not Reported)" {
		t.Fatalf("got %q", got)
	}
	if got := (SeriesResult{Wins: 1, Losses: 3}).Record(); got != "1-3 L" {
		t.Fatalf("got %q", got)
	}
	if got := (SeriesResult{Wins: 2, Losses: 2}).Record(); got != "2-2 T" {
		t.Fatalf("got %q", got)
	}
}

func TestOpponentFromFolder(t *testing.T) {
	if got := opponentFromFolder("MD 07 vs The Vs Team"); got != "The Vs Team" {
		t.Fatalf("got %q", got)
	}
	if got := opponentFromFolder("no separator"); got != "" {
		t.Fatalf("got %q", got)
	}
}
