// internal/app/subscribers.go
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	d "github.com/rlfranchise/bcgroups-bot/internal/adapters/discord"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/events"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/engine"
	"github.com/rlfranchise/bcgroups-bot/internal/ui"
)

var handled sync.Map

// recentlyHandled dedupes bus deliveries; the same series can be announced
// more than once in quick succession.
func recentlyHandled(key string, ttl time.Duration) bool {
	now := time.Now()
	if v, ok := handled.Load(key); ok {
		if now.Sub(v.(time.Time)) < ttl {
			return true
		}
	}
	handled.Store(key, now)
	return false
}

// StartEventSubscribers hooks the report pipeline onto the event bus.
// Returns a cancel func that detaches every subscriber.
func (b *Bot) StartEventSubscribers() func() {
	var cancels []func()

	cancels = append(cancels, events.Subscribe(func(ev events.SeriesFinished) {
		key := "series:" + ev.GuildID + ":" + ev.HomeTeam + ":" + ev.AwayTeam
		if recentlyHandled(key, 30*time.Second) {
			return
		}
		go b.autoReport(ev)
	}))

	cancels = append(cancels, events.Subscribe(func(ev events.MatchDayChanged) {
		b.Log.Info().Str("guild", ev.GuildID).Int("day", ev.Day).Msg("match day changed")
	}))

	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// autoReport files a finished series without a confirmation step: search,
// navigate, upload, all narrated through one channel embed.
func (b *Bot) autoReport(ev events.SeriesFinished) {
	log := b.Log.With().Str("guild", ev.GuildID).Str("home", ev.HomeTeam).Str("away", ev.AwayTeam).Logger()

	guild, err := b.guildOf(ev.GuildID)
	if err != nil {
		log.Error().Err(err).Msg("auto report: guild lookup failed")
		return
	}
	t, err := b.Roster.FindTeam(guild, ev.HomeTeam)
	if err != nil {
		log.Warn().Msg("auto report: home team not registered")
		return
	}
	sg, err := b.Store.SeasonGroup(ev.GuildID, t.RoleID)
	if err != nil {
		log.Warn().Msg("auto report: no season group")
		return
	}
	token, ok := b.tokenFor(sg)
	if !ok {
		log.Warn().Msg("auto report: no auth token")
		return
	}
	roster := b.Roster.Roster(guild, t)

	mt := match.RegularSeason
	day := b.Store.MatchDay(ev.GuildID)
	if ev.Scrim {
		mt = match.Scrim
		day = match.ScrimDay
	}
	m := match.Match{Home: t.Name, Away: ev.AwayTeam, Day: day, Date: time.Now(), Type: mt}

	msg, err := d.SendChannelEmbed(b.Sess, ev.ChannelID, ui.SearchingEmbed(m, colorSearching))
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()
	eng := b.engineFor(token)

	err = eng.EnsureUnreported(ctx, sg.Code, m, m.Home, roster)
	var already *engine.AlreadyReportedError
	if errors.As(err, &already) {
		_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
			ui.AlreadyReportedEmbed(m, already.Summary, already.GroupID, colorConfirm))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("auto report: already-reported check failed")
		_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
			ui.FailEmbed(m, "Could not check for a prior report: "+err.Error()))
		return
	}

	res, err := eng.FindMatchReplays(ctx, m, roster, ev.InvokerID, false)
	if err != nil {
		if engine.IsNoReplays(err) {
			_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
				ui.FailEmbed(m, "No uploaded replays of this series were found."))
		} else {
			log.Error().Err(err).Msg("auto report: search failed")
			_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
				ui.FailEmbed(m, "Replay search failed: "+err.Error()))
		}
		return
	}

	_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID, ui.UploadingEmbed(m, res.Summary, colorConfirm))

	dest, err := eng.ResolveDestination(ctx, sg.Code, m.FolderNames())
	if err != nil {
		log.Error().Err(err).Msg("auto report: destination resolution failed")
		_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
			ui.FailEmbed(m, "Could not create the destination folder: "+err.Error()))
		return
	}
	filed, err := eng.UploadAndFile(ctx, res.ReplayIDs, dest)
	if err != nil {
		log.Error().Err(err).Msg("auto report: filing failed")
		_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
			ui.FailEmbed(m, "Filing the replays failed partway: "+err.Error()))
		return
	}

	_ = d.EditChannelEmbed(b.Sess, ev.ChannelID, msg.ID,
		ui.DoneEmbed(m, res.Summary, dest, len(filed), colorDone))
	log.Info().Str("group", dest).Int("filed", len(filed)).Msg("series auto reported")
}
