// internal/app/queries.go
// Read-only commands over what is already filed in the season hierarchy.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	d "github.com/rlfranchise/bcgroups-bot/internal/adapters/discord"
	"github.com/rlfranchise/bcgroups-bot/internal/engine"
	"github.com/rlfranchise/bcgroups-bot/internal/ui"
)

const queryTimeout = 2 * time.Minute

// handleMatch shows one team's reported result for a match day.
func (b *Bot) handleMatch(s *discordgo.Session, i *discordgo.InteractionCreate, day int, teamQuery string) {
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
	token, ok := b.tokenFor(sg)
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ The group owner has no auth token registered.")
		return
	}
	if day == 0 {
		day = b.Store.MatchDay(i.GuildID)
	}
	roster := b.Roster.Roster(guild, t)

	_ = d.SendEphemeral(s, i, "Looking up reported results...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		results, err := b.engineFor(token).TeamResults(ctx, sg.Code, day, t.Name, roster)
		if err != nil {
			_ = d.EditResponse(s, i, "⚠️ Lookup failed: "+err.Error())
			return
		}
		if len(results) == 0 {
			_ = d.EditResponse(s, i, fmt.Sprintf("No reported series for **%s** on match day %d.", t.Name, day))
			return
		}
		var lines []string
		for _, r := range results {
			lines = append(lines, fmt.Sprintf("%s — [view](%s)", r.Summary(t.Name), ui.GroupLink(r.GroupID)))
		}
		_ = d.EditResponse(s, i, fmt.Sprintf("**Match Day %d**\n%s", day, strings.Join(lines, "\n")))
	}()
}

// handleSeasonResults tallies a team's whole season.
func (b *Bot) handleSeasonResults(s *discordgo.Session, i *discordgo.InteractionCreate, teamQuery string) {
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
	token, ok := b.tokenFor(sg)
	if !ok {
		_ = d.SendEphemeral(s, i, "⚠️ The group owner has no auth token registered.")
		return
	}
	roster := b.Roster.Roster(guild, t)

	if err := d.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       t.Name + " — Season Results",
		Description: "Tallying the season, this can take a moment...",
		Color:       colorSearching,
	}, nil); err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		results, err := b.engineFor(token).SeasonResults(ctx, sg.Code, t.Name, roster)
		if err != nil {
			_ = d.EditResponse(s, i, "⚠️ Lookup failed: "+err.Error())
			return
		}

		var rows [][2]string
		var wins, losses int
		for _, r := range results {
			rows = append(rows, [2]string{r.Opponent, r.Record()})
			wins += r.Wins
			losses += r.Losses
		}
		emb := ui.ResultsTable(t.Name+" — Season Results", "Opponent", "Results", rows, wins, losses, "")
		_ = d.EditResponseEmbed(s, i, emb, nil)
	}()
}

// handleMatchDaySummary tallies every registered team for one match day.
func (b *Bot) handleMatchDaySummary(s *discordgo.Session, i *discordgo.InteractionCreate, day int) {
	guild, err := b.guildOf(i.GuildID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not load this server's data.")
		return
	}
	if day == 0 {
		day = b.Store.MatchDay(i.GuildID)
	}
	teams := b.Roster.Teams(guild)
	if len(teams) == 0 {
		_ = d.SendEphemeral(s, i, "⚠️ No teams registered.")
		return
	}

	title := fmt.Sprintf("Match Day %d Summary", day)
	if err := d.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: "Tallying every team, this can take a moment...",
		Color:       colorSearching,
	}, nil); err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		type teamRow struct {
			name    string
			results []engine.SeriesResult
		}
		rowsByIdx := make([]teamRow, len(teams))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(3)
		for idx, t := range teams {
			rowsByIdx[idx].name = t.Name
			sg, err := b.Store.SeasonGroup(i.GuildID, t.RoleID)
			if err != nil {
				continue
			}
			token, ok := b.tokenFor(sg)
			if !ok {
				continue
			}
			roster := b.Roster.Roster(guild, t)
			idx, t := idx, t
			g.Go(func() error {
				results, err := b.engineFor(token).TeamResults(gctx, sg.Code, day, t.Name, roster)
				if err != nil {
					b.Log.Warn().Err(err).Str("team", t.Name).Msg("summary lookup failed")
					return nil
				}
				rowsByIdx[idx].results = results
				return nil
			})
		}
		_ = g.Wait()

		var rows [][2]string
		var wins, losses int
		for _, row := range rowsByIdx {
			var w, l int
			var opponents []string
			for _, r := range row.results {
				w += r.Wins
				l += r.Losses
				opponents = append(opponents, r.Record()+" vs "+r.Opponent)
			}
			record := "(Not Reported)"
			if len(opponents) > 0 {
				record = strings.Join(opponents, ", ")
			}
			rows = append(rows, [2]string{row.name, record})
			wins += w
			losses += l
		}
		emb := ui.ResultsTable(title, "Team", "Results", rows, wins, losses, "")
		_ = d.EditResponseEmbed(s, i, emb, nil)
	}()
}

// handleRoster shows a team's members and their linked accounts.
func (b *Bot) handleRoster(s *discordgo.Session, i *discordgo.InteractionCreate, teamQuery string) {
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
	roster := b.Roster.Roster(guild, t)
	if len(roster) == 0 {
		_ = d.SendEphemeral(s, i, "⚠️ Nobody holds the **"+t.Name+"** role.")
		return
	}

	var lines []string
	for _, m := range roster {
		if len(m.Accounts) == 0 {
			lines = append(lines, fmt.Sprintf("**%s** — no linked accounts", m.Name))
			continue
		}
		var accs []string
		for _, a := range m.Accounts {
			accs = append(accs, fmt.Sprintf("%s/%s", a.Platform, a.ID))
		}
		lines = append(lines, fmt.Sprintf("**%s** — %s", m.Name, strings.Join(accs, ", ")))
	}
	title := t.Name
	if t.Tag != "" {
		title += " (" + t.Tag + ")"
	}
	_ = d.SendEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Color:       colorConfirm,
	})
}

// handleTeams lists the registered teams, highest role first.
func (b *Bot) handleTeams(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := b.guildOf(i.GuildID)
	if err != nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not load this server's data.")
		return
	}
	teams := b.Roster.Teams(guild)
	if len(teams) == 0 {
		_ = d.SendEphemeral(s, i, "No teams registered. Admins set them with team roles named \"Name (TAG)\".")
		return
	}
	var lines []string
	for _, t := range teams {
		line := "• " + t.Name
		if t.Tag != "" {
			line += " (" + t.Tag + ")"
		}
		if _, err := b.Store.SeasonGroup(i.GuildID, t.RoleID); err == nil {
			line += " ✅"
		}
		lines = append(lines, line)
	}
	_ = d.SendEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Registered Teams",
		Description: strings.Join(lines, "\n"),
		Color:       colorConfirm,
	})
}
