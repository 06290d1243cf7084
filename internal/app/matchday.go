// internal/app/matchday.go
// Rolls the match day forward from the registered season dates, once per
// night at local midnight.
package app

import (
	"time"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/events"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
)

// currentMatchDay derives the match day from the season calendar: the
// number of registered dates that have arrived. Before the first date the
// season sits on day 1.
func currentMatchDay(dates []string, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := 0
	for _, ds := range dates {
		t, err := store.ParseDate(ds)
		if err != nil {
			continue
		}
		if !t.After(today) {
			day++
		}
	}
	if day == 0 {
		return 1
	}
	return day
}

// nextMidnight is the first instant of the next calendar day.
func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

// StartMatchDayTicker wakes at midnight and re-derives each guild's match
// day, publishing MatchDayChanged on a rollover. Returns a stop func.
func (b *Bot) StartMatchDayTicker() func() {
	stop := make(chan struct{})
	go func() {
		for {
			t := time.NewTimer(time.Until(nextMidnight(time.Now())))
			select {
			case <-stop:
				t.Stop()
				return
			case <-t.C:
			}
			b.rollMatchDays(time.Now())
		}
	}()
	return func() { close(stop) }
}

func (b *Bot) rollMatchDays(now time.Time) {
	for _, guildID := range b.Store.GuildIDs() {
		dates := b.Store.MatchDates(guildID)
		if len(dates) == 0 {
			continue
		}
		day := currentMatchDay(dates, now)
		if day == b.Store.MatchDay(guildID) {
			continue
		}
		if err := b.Store.SetMatchDay(guildID, day); err != nil {
			b.Log.Error().Err(err).Str("guild", guildID).Msg("match day rollover not saved")
			continue
		}
		b.Log.Info().Str("guild", guildID).Int("day", day).Msg("match day rolled over")
		events.Publish(events.MatchDayChanged{GuildID: guildID, Day: day})
	}
}
