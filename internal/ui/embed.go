// Package ui renders the bot's Discord surface: report status embeds,
// result tables, and the confirm/cancel controls.
package ui

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
)

const groupURL = "https://ballchasing.com/group/"

// GroupLink renders the public page URL of a replay group.
func GroupLink(code string) string { return groupURL + code }

// MatchTitle is the embed title for a report: "Match Day 2: Home vs Away",
// or the date form for scrims.
func MatchTitle(m match.Match) string {
	if m.Type == match.Scrim {
		return fmt.Sprintf("Scrim %s: %s vs %s", m.FolderPrefix(), m.Home, m.Away)
	}
	return fmt.Sprintf("Match Day %d: %s vs %s", m.Day, m.Home, m.Away)
}

// SearchingEmbed is the placeholder while the replay search runs.
func SearchingEmbed(m match.Match, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       MatchTitle(m),
		Description: "Searching for uploaded replays of this match...",
		Color:       color,
	}
}

// ConfirmEmbed asks the reporter to confirm the found series score.
func ConfirmEmbed(m match.Match, summary string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: MatchTitle(m),
		Description: fmt.Sprintf(
			"Match summary:\n%s\n\nConfirm the score to file these replays.", summary),
		Color: color,
	}
}

// UploadingEmbed shows while the replays get filed.
func UploadingEmbed(m match.Match, summary string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: MatchTitle(m),
		Description: fmt.Sprintf(
			"Match summary:\n%s\n\nScore confirmed. Filing replays, this can take a few seconds...", summary),
		Color: color,
	}
}

// DoneEmbed is the final report state with the group link.
func DoneEmbed(m match.Match, summary, groupID string, filed int, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: MatchTitle(m),
		Description: fmt.Sprintf(
			"Match summary:\n%s\n\nFiled %d replay(s). [View the group!](%s)",
			summary, filed, GroupLink(groupID)),
		Color: color,
	}
}

// FailEmbed replaces the status with an error line.
func FailEmbed(m match.Match, msg string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       MatchTitle(m),
		Description: "❌ " + msg,
		Color:       0xED4245,
	}
}

// AlreadyReportedEmbed points at the prior report of the same match.
func AlreadyReportedEmbed(m match.Match, summary, groupID string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: MatchTitle(m),
		Description: fmt.Sprintf(
			"This match has already been reported.\n\n%s\n\nView here: %s",
			summary, GroupLink(groupID)),
		Color: color,
	}
}

// ResultsTable renders a two column table, one row per series plus a totals
// row. colA/colB label the columns ("Opponent"/"Results" on a match day
// embed, "Team"/"Record" on the summary).
func ResultsTable(title, colA, colB string, rows [][2]string, totalWins, totalLosses int, thumbnail string) *discordgo.MessageEmbed {
	var left, right []string
	for _, row := range rows {
		left = append(left, row[0])
		right = append(right, row[1])
	}
	left = append(left, "**Total**")
	right = append(right, "**"+totalRecord(totalWins, totalLosses)+"**")

	emb := &discordgo.MessageEmbed{
		Title: title,
		Color: WPColor(totalWins, totalLosses),
		Fields: []*discordgo.MessageEmbedField{
			{Name: colA, Value: strings.Join(left, "\n"), Inline: true},
			{Name: colB, Value: strings.Join(right, "\n"), Inline: true},
		},
	}
	if thumbnail != "" {
		emb.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}
	return emb
}

func totalRecord(wins, losses int) string {
	if wp := wpString(wins, losses); wp != "" {
		return fmt.Sprintf("%d-%d (%s)", wins, losses, wp)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

func wpString(wins, losses int) string {
	if wins+losses == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f%%", float64(wins)/float64(wins+losses)*100)
}

// WPColor maps a win percentage onto a red -> yellow -> green gradient.
// No games played renders the neutral default.
func WPColor(wins, losses int) int {
	if wins+losses == 0 {
		return 0
	}
	wp := float64(wins) / float64(wins+losses)

	var red, green int
	if wp < 0.5 {
		red = 255
		green = int(255*wp/0.5 + 0.5)
	} else {
		green = 255
		red = 255 - int(255*(wp-0.5)/0.5+0.5)
	}
	return red<<16 | green<<8
}
