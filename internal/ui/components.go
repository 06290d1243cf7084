// internal/ui/components.go
// Discord components (buttons) for the report confirmation step.

package ui

import "github.com/bwmarrin/discordgo"

const (
	ConfirmReportID = "report_confirm"
	CancelReportID  = "report_cancel"
)

// ConfirmComponents is the confirm/cancel row shown under a score summary.
func ConfirmComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.SuccessButton,
					CustomID: ConfirmReportID,
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.DangerButton,
					CustomID: CancelReportID,
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				},
			},
		},
	}
}

// NoComponents clears the component rows of an edited message.
func NoComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{}
}
