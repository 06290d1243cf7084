// internal/app/router.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
	d "github.com/rlfranchise/bcgroups-bot/internal/adapters/discord"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/events"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
	"github.com/rlfranchise/bcgroups-bot/internal/ui"
)

func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlash(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

// ------------------- option helpers -------------------

type optmap map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionsOf(opts []*discordgo.ApplicationCommandInteractionDataOption) optmap {
	m := optmap{}
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (m optmap) str(name string) string {
	if o, ok := m[name]; ok {
		return o.StringValue()
	}
	return ""
}

func (m optmap) integer(name string) int {
	if o, ok := m[name]; ok {
		return int(o.IntValue())
	}
	return 0
}

func (m optmap) boolean(name string) bool {
	if o, ok := m[name]; ok {
		return o.BoolValue()
	}
	return false
}

// ------------------- slash -------------------

func (b *Bot) handleSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	opts := optionsOf(data.Options)
	b.Log.Debug().Str("command", data.Name).Str("guild", i.GuildID).Msg("slash")

	switch data.Name {

	case "bcreport":
		mt, err := match.ParseType(opts.str("type"))
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		b.startReport(s, i, reportRequest{
			Opponent: opts.str("opponent"),
			Type:     mt,
			Day:      opts.integer("day"),
		})

	case "forcebcreport":
		if !d.RequirePrivileged(s, i) {
			return
		}
		mt, err := match.ParseType(opts.str("type"))
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		b.startReport(s, i, reportRequest{
			TeamQuery: opts.str("team"),
			Opponent:  opts.str("opponent"),
			Type:      mt,
			Day:       opts.integer("day"),
			Force:     true,
			Deep:      opts.boolean("deep"),
		})

	case "match":
		b.handleMatch(s, i, opts.integer("day"), opts.str("team"))

	case "matchdaysummary":
		b.handleMatchDaySummary(s, i, opts.integer("day"))

	case "seasonresults":
		b.handleSeasonResults(s, i, opts.str("team"))

	case "setseasongroup":
		b.handleSetSeasonGroup(s, i, opts.str("code"), opts.str("team"))

	case "seasongroup":
		b.handleSeasonGroup(s, i, opts.str("team"))

	case "setmatchdays":
		b.handleSetMatchDays(s, i, opts.str("dates"))

	case "matchday":
		day := b.Store.MatchDay(i.GuildID)
		total := len(b.Store.MatchDates(i.GuildID))
		if total > 0 {
			_ = d.SendEphemeral(s, i, fmt.Sprintf("📅 Match day **%d** of %d.", day, total))
		} else {
			_ = d.SendEphemeral(s, i, fmt.Sprintf("📅 Match day **%d**. No season dates registered yet.", day))
		}

	case "nextmatchday":
		if !d.RequirePrivileged(s, i) {
			return
		}
		day := b.Store.MatchDay(i.GuildID) + 1
		if err := b.Store.SetMatchDay(i.GuildID, day); err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		events.Publish(events.MatchDayChanged{GuildID: i.GuildID, Day: day})
		_ = d.SendEphemeral(s, i, fmt.Sprintf("📅 Match day advanced to **%d**.", day))

	case "setauthtoken":
		b.handleSetAuthToken(s, i, opts.str("token"))

	case "roster":
		b.handleRoster(s, i, opts.str("team"))

	case "teams":
		b.handleTeams(s, i)

	case "registerteam", "unregisterteam":
		b.handleRegisterTeam(s, i, data.Name == "registerteam", opts)

	case "accounts":
		b.handleAccounts(s, i, data.Options)
	}
}

// ------------------- components -------------------

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	b.Log.Debug().Str("component", customID).Str("user", d.SafeName(d.UserOf(i))).Msg("component")

	switch customID {
	case ui.ConfirmReportID:
		b.handleConfirm(s, i)
	case ui.CancelReportID:
		b.handleCancel(s, i)
	}
}

// ------------------- settings commands -------------------

func (b *Bot) handleSetSeasonGroup(s *discordgo.Session, i *discordgo.InteractionCreate, code, teamQuery string) {
	code = strings.TrimSpace(strings.TrimPrefix(code, ui.GroupLink("")))
	if code == "" {
		_ = d.SendEphemeral(s, i, "⚠️ Give the group code from the group page URL.")
		return
	}

	guild, err := b.guildOf(i.GuildID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not load this server's data.")
		return
	}
	t, err := b.resolveTeam(guild, i, teamQuery)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}
	if teamQuery != "" && !d.IsPrivileged(i) {
		_ = d.SendEphemeral(s, i, "⛔ Only admins can set another team's season group.")
		return
	}

	u := d.UserOf(i)
	if u == nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not identify you.")
		return
	}
	sg := store.SeasonGroup{OwnerID: u.ID, Code: code}
	if err := b.Store.SetSeasonGroup(i.GuildID, t.RoleID, sg); err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}
	_ = d.SendEphemeral(s, i, fmt.Sprintf(
		"✅ Season group for **%s** set. Replays will be filed under %s", t.Name, ui.GroupLink(code)))

	// Align the top group's stat-merging settings with what the engine uses
	// for the folders it creates below it.
	if token, ok := b.tokenFor(sg); ok {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			err := ballchasing.New("", token).PatchGroup(ctx, code, map[string]string{
				"team_identification":   "by-player-clusters",
				"player_identification": "by-id",
				"shared":                "true",
			})
			if err != nil {
				b.Log.Warn().Err(err).Str("group", code).Msg("season group settings not applied")
			}
		}()
	}
}

func (b *Bot) handleSeasonGroup(s *discordgo.Session, i *discordgo.InteractionCreate, teamQuery string) {
	guild, err := b.guildOf(i.GuildID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not load this server's data.")
		return
	}
	t, err := b.resolveTeam(guild, i, teamQuery)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}
	sg, err := b.Store.SeasonGroup(i.GuildID, t.RoleID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ No season group registered for **"+t.Name+"**.")
		return
	}
	_ = d.SendEphemeral(s, i, fmt.Sprintf("**%s** season group: %s", t.Name, ui.GroupLink(sg.Code)))
}

func (b *Bot) handleSetMatchDays(s *discordgo.Session, i *discordgo.InteractionCreate, raw string) {
	if !d.RequirePrivileged(s, i) {
		return
	}
	var dates []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			dates = append(dates, part)
		}
	}
	if len(dates) == 0 {
		_ = d.SendEphemeral(s, i, "⚠️ Give at least one M/D/YYYY date.")
		return
	}
	if err := b.Store.SetMatchDates(i.GuildID, dates); err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}

	day := currentMatchDay(b.Store.MatchDates(i.GuildID), time.Now())
	if err := b.Store.SetMatchDay(i.GuildID, day); err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}
	events.Publish(events.MatchDayChanged{GuildID: i.GuildID, Day: day})
	_ = d.SendEphemeral(s, i, fmt.Sprintf(
		"✅ Registered %d match dates. Current match day: **%d**.", len(dates), day))
}

func (b *Bot) handleSetAuthToken(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	u := d.UserOf(i)
	if u == nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not identify you.")
		return
	}
	token = strings.TrimSpace(token)
	if token == "" {
		if err := b.Store.SetToken(u.ID, ""); err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		_ = d.SendEphemeral(s, i, "✅ Auth token cleared.")
		return
	}

	_ = d.SendEphemeral(s, i, "Validating your token...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		steamID, err := ballchasing.New("", token).Ping(ctx)
		if err != nil {
			_ = d.EditResponse(s, i, "❌ The replay service rejected that token: "+err.Error())
			return
		}
		if err := b.Store.SetToken(u.ID, token); err != nil {
			_ = d.EditResponse(s, i, "⚠️ "+err.Error())
			return
		}
		_ = d.EditResponse(s, i, "✅ Token accepted (steam id "+steamID+").")
	}()
}

func (b *Bot) handleAccounts(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	u := d.UserOf(i)
	if u == nil || len(opts) == 0 {
		_ = d.SendEphemeral(s, i, "⚠️ Could not identify you.")
		return
	}
	sub := opts[0]
	subOpts := optionsOf(sub.Options)

	switch sub.Name {
	case "add", "remove":
		platform, ok := team.ParsePlatform(subOpts.str("platform"))
		if !ok {
			_ = d.SendEphemeral(s, i, "⚠️ Platform must be steam, xbox, ps4, ps5 or epic.")
			return
		}
		acc := team.Account{Platform: platform, ID: strings.TrimSpace(subOpts.str("id"))}
		if acc.ID == "" {
			_ = d.SendEphemeral(s, i, "⚠️ Missing account id.")
			return
		}
		var err error
		if sub.Name == "add" {
			err = b.Store.AddAccount(u.ID, acc)
		} else {
			err = b.Store.RemoveAccount(u.ID, acc)
		}
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		_ = d.SendEphemeral(s, i, fmt.Sprintf("✅ Account %s/%s %sed.", acc.Platform, acc.ID, sub.Name))

	case "list":
		accs := b.Store.Accounts(u.ID)
		if len(accs) == 0 {
			_ = d.SendEphemeral(s, i, "No linked accounts. Use /accounts add.")
			return
		}
		var lines []string
		for _, a := range accs {
			lines = append(lines, fmt.Sprintf("• %s — %s", a.Platform, a.ID))
		}
		_ = d.SendEphemeral(s, i, strings.Join(lines, "\n"))
	}
}

func (b *Bot) handleRegisterTeam(s *discordgo.Session, i *discordgo.InteractionCreate, register bool, opts optmap) {
	if !d.RequirePrivileged(s, i) {
		return
	}
	o, ok := opts["role"]
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ Missing role.")
		return
	}
	role := o.RoleValue(s, i.GuildID)
	if role == nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not resolve that role.")
		return
	}

	roles := b.Store.TeamRoles(i.GuildID)
	filtered := roles[:0]
	for _, id := range roles {
		if id != role.ID {
			filtered = append(filtered, id)
		}
	}
	if register {
		filtered = append(filtered, role.ID)
	}
	if err := b.Store.SetTeamRoles(i.GuildID, filtered); err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
		return
	}
	if register {
		_ = d.SendEphemeral(s, i, fmt.Sprintf("✅ **%s** registered as a team.", role.Name))
	} else {
		_ = d.SendEphemeral(s, i, fmt.Sprintf("✅ **%s** unregistered.", role.Name))
	}
}

// resolveTeam picks the team a command refers to: the named one, else the
// invoker's own.
func (b *Bot) resolveTeam(guild *discordgo.Guild, i *discordgo.InteractionCreate, query string) (team.Team, error) {
	if query != "" {
		t, err := b.Roster.FindTeam(guild, query)
		if err != nil {
			return team.Team{}, fmt.Errorf("no registered team matches %q", query)
		}
		return t, nil
	}
	t, err := b.Roster.MemberTeam(guild, i.Member)
	if err != nil {
		return team.Team{}, errors.New("you don't hold a registered team role, name the team explicitly")
	}
	return t, nil
}
