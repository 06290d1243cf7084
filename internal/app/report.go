// internal/app/report.go
// The report flow: search, confirm, file.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	d "github.com/rlfranchise/bcgroups-bot/internal/adapters/discord"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/engine"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
	"github.com/rlfranchise/bcgroups-bot/internal/ui"
)

const (
	colorSearching = 0xF1C40F
	colorConfirm   = 0x3498DB
	colorDone      = 0x2ECC71

	reportTimeout = 5 * time.Minute
	uploadTimeout = 10 * time.Minute
)

// reportRequest is a parsed /bcreport or /forcebcreport invocation.
type reportRequest struct {
	TeamQuery string // empty means the invoker's own team
	Opponent  string
	Type      match.Type
	Day       int // 0 means the current match day
	Force     bool
	Deep      bool
}

// startReport validates the request, answers the interaction with a public
// status embed, and runs the replay search in the background. A found series
// parks in the pending map until the reporter confirms.
func (b *Bot) startReport(s *discordgo.Session, i *discordgo.InteractionCreate, req reportRequest) {
	guild, err := b.guildOf(i.GuildID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not load this server's member list.")
		return
	}

	var homeTeam team.Team
	if req.TeamQuery != "" {
		homeTeam, err = b.Roster.FindTeam(guild, req.TeamQuery)
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ No registered team matches \""+req.TeamQuery+"\".")
			return
		}
	} else {
		homeTeam, err = b.Roster.MemberTeam(guild, i.Member)
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ You don't hold a registered team role. Name the team explicitly.")
			return
		}
	}

	var opponent string
	if t, err := b.Roster.FindTeam(guild, req.Opponent); err == nil {
		opponent = t.Name
	} else {
		opponent = strings.TrimSpace(req.Opponent)
	}
	if opponent == "" || strings.EqualFold(opponent, homeTeam.Name) {
		_ = d.SendEphemeral(s, i, "⚠️ Pick an opponent that isn't your own team.")
		return
	}

	sg, err := b.Store.SeasonGroup(i.GuildID, homeTeam.RoleID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ No season group registered for **"+homeTeam.Name+"**. Use /setseasongroup first.")
		return
	}
	token, ok := b.tokenFor(sg)
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ The group owner has no auth token registered. Use /setauthtoken.")
		return
	}

	roster := b.Roster.Roster(guild, homeTeam)
	if len(roster) == 0 {
		_ = d.SendEphemeral(s, i, "⚠️ Nobody holds the **"+homeTeam.Name+"** role.")
		return
	}

	day := req.Day
	if day == 0 {
		day = b.Store.MatchDay(i.GuildID)
	}
	if req.Type == match.Scrim {
		day = match.ScrimDay
	}
	m := match.Match{
		Home: homeTeam.Name,
		Away: opponent,
		Day:  day,
		Date: time.Now(),
		Type: req.Type,
	}

	invoker := d.UserOf(i)
	invokerID := ""
	if invoker != nil {
		invokerID = invoker.ID
	}

	if err := d.RespondEmbed(s, i, ui.SearchingEmbed(m, colorSearching), nil); err != nil {
		return
	}

	go b.runSearch(s, i, m, roster, sg, token, invokerID, req)
}

// runSearch is the background half of startReport: already-reported check,
// replay search, then the confirm prompt.
func (b *Bot) runSearch(s *discordgo.Session, i *discordgo.InteractionCreate, m match.Match, members []team.Member, sg store.SeasonGroup, token, invokerID string, req reportRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	eng := b.engineFor(token)

	if !req.Force {
		err := eng.EnsureUnreported(ctx, sg.Code, m, m.Home, members)
		var already *engine.AlreadyReportedError
		if errors.As(err, &already) {
			_ = d.EditResponseEmbed(s, i, ui.AlreadyReportedEmbed(m, already.Summary, already.GroupID, colorConfirm), nil)
			return
		}
		if err != nil {
			b.Log.Error().Err(err).Msg("already-reported check failed")
			_ = d.EditResponseEmbed(s, i, ui.FailEmbed(m, "Could not check for a prior report: "+err.Error()), nil)
			return
		}
	}

	res, err := eng.FindMatchReplays(ctx, m, members, invokerID, req.Deep)
	if err != nil {
		if engine.IsNoReplays(err) {
			_ = d.EditResponseEmbed(s, i, ui.FailEmbed(m,
				"No uploaded replays of this match were found. Make sure a rostered player uploaded the games, then try again."), nil)
		} else {
			b.Log.Error().Err(err).Msg("replay search failed")
			_ = d.EditResponseEmbed(s, i, ui.FailEmbed(m, "Replay search failed: "+err.Error()), nil)
		}
		return
	}

	if err := d.EditResponseEmbed(s, i, ui.ConfirmEmbed(m, res.Summary, colorConfirm), ui.ConfirmComponents()); err != nil {
		return
	}
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		b.Log.Error().Err(err).Msg("could not fetch the status message id")
		return
	}
	b.pending.Put(msg.ID, pendingReport{
		GuildID:    i.GuildID,
		InvokerID:  invokerID,
		Match:      m,
		Resolution: res,
		TopGroup:   sg.Code,
		Token:      token,
		TeamName:   m.Home,
		Roster:     members,
	})
}

// handleConfirm files the pending series behind a confirm click.
func (b *Bot) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r, ok := b.pending.Take(i.Message.ID)
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ This report prompt has expired. Run /bcreport again.")
		return
	}
	u := d.UserOf(i)
	if u == nil || (u.ID != r.InvokerID && !d.IsPrivileged(i)) {
		b.pending.Put(i.Message.ID, r)
		_ = d.SendEphemeral(s, i, "⚠️ Only the reporter (or an admin) can confirm this.")
		return
	}

	_ = d.UpdateMessage(s, i, ui.UploadingEmbed(r.Match, r.Resolution.Summary, colorConfirm), ui.NoComponents())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()

		eng := b.engineFor(r.Token)
		dest, err := eng.ResolveDestination(ctx, r.TopGroup, r.Match.FolderNames())
		if err != nil {
			b.Log.Error().Err(err).Msg("destination folder resolution failed")
			_ = d.EditChannelEmbed(s, i.ChannelID, i.Message.ID,
				ui.FailEmbed(r.Match, "Could not create the destination folder: "+err.Error()))
			return
		}

		filed, err := eng.UploadAndFile(ctx, r.Resolution.ReplayIDs, dest)
		if err != nil {
			b.Log.Error().Err(err).Msg("replay filing failed")
			_ = d.EditChannelEmbed(s, i.ChannelID, i.Message.ID,
				ui.FailEmbed(r.Match, "Filing the replays failed partway: "+err.Error()))
			return
		}

		_ = d.EditChannelEmbed(s, i.ChannelID, i.Message.ID,
			ui.DoneEmbed(r.Match, r.Resolution.Summary, dest, len(filed), colorDone))
		b.Log.Info().
			Str("guild", r.GuildID).
			Str("group", dest).
			Int("filed", len(filed)).
			Msg("series reported")
	}()
}

// handleCancel drops the pending series behind a cancel click.
func (b *Bot) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r, ok := b.pending.Take(i.Message.ID)
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ This report prompt has expired.")
		return
	}
	u := d.UserOf(i)
	if u == nil || (u.ID != r.InvokerID && !d.IsPrivileged(i)) {
		b.pending.Put(i.Message.ID, r)
		_ = d.SendEphemeral(s, i, "⚠️ Only the reporter (or an admin) can cancel this.")
		return
	}
	_ = d.UpdateMessage(s, i, ui.FailEmbed(r.Match, "Report cancelled. Nothing was filed."), ui.NoComponents())
}
