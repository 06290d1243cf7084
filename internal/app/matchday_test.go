package app

import (
	"testing"
	"time"
)

var seasonDates = []string{"1/10/2026", "1/17/2026", "1/24/2026"}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestCurrentMatchDay(t *testing.T) {
	// before the first date the season sits on day 1
	if got := currentMatchDay(seasonDates, day(2026, time.January, 5)); got != 1 {
		t.Fatalf("pre-season day %d", got)
	}
	// a match date counts from its own day
	if got := currentMatchDay(seasonDates, day(2026, time.January, 10)); got != 1 {
		t.Fatalf("first match date day %d", got)
	}
	if got := currentMatchDay(seasonDates, day(2026, time.January, 12)); got != 1 {
		t.Fatalf("between 1 and 2 day %d", got)
	}
	if got := currentMatchDay(seasonDates, day(2026, time.January, 17)); got != 2 {
		t.Fatalf("second match date day %d", got)
	}
	if got := currentMatchDay(seasonDates, day(2026, time.February, 1)); got != 3 {
		t.Fatalf("post-season day %d", got)
	}
	// unparsable entries are skipped, not fatal
	if got := currentMatchDay([]string{"bogus", "1/10/2026"}, day(2026, time.January, 12)); got != 1 {
		t.Fatalf("day %d with a bogus date present", got)
	}
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2026, time.March, 4, 23, 59, 10, 0, time.UTC)
	next := nextMidnight(now)
	if next.Day() != 5 || next.Hour() != 0 || next.Minute() != 0 {
		t.Fatalf("got %v", next)
	}
	if !next.After(now) {
		t.Fatalf("midnight not in the future")
	}

	// month rollover
	eom := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)
	if got := nextMidnight(eom); got.Month() != time.February || got.Day() != 1 {
		t.Fatalf("got %v", got)
	}
}
