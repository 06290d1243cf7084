package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// SendEphemeral posts an ephemeral message only visible to the user who interacted.
func SendEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("SendEphemeral error: %v", err)
	}
	return err
}

// SendEphemeralEmbed responds with an ephemeral embed.
func SendEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{emb},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("SendEphemeralEmbed error: %v", err)
	}
	return err
}

// RespondEmbed posts a public embed as the interaction response, optionally
// with component rows.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{emb},
	}
	if comps != nil {
		data.Components = comps
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("RespondEmbed error: %v", err)
	}
	return err
}

// EditResponseEmbed edits the original response of an interaction.
func EditResponseEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	edit := &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{emb},
	}
	if comps != nil {
		edit.Components = &comps
	}
	_, err := s.InteractionResponseEdit(i.Interaction, edit)
	if err != nil {
		log.Printf("EditResponseEmbed error: %v", err)
	}
	return err
}

// EditResponse edits the original response down to plain text.
func EditResponse(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &msg,
	})
	if err != nil {
		log.Printf("EditResponse error: %v", err)
	}
	return err
}

// UpdateMessage answers a component interaction by rewriting its message.
func UpdateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{emb},
			Components: comps,
		},
	})
	if err != nil {
		log.Printf("UpdateMessage error: %v", err)
	}
	return err
}

// SendChannelEmbed posts a plain channel embed (no interaction attached).
func SendChannelEmbed(s *discordgo.Session, channelID string, emb *discordgo.MessageEmbed) (*discordgo.Message, error) {
	msg, err := s.ChannelMessageSendEmbed(channelID, emb)
	if err != nil {
		log.Printf("SendChannelEmbed error: %v", err)
	}
	return msg, err
}

// EditChannelEmbed rewrites a previously sent channel embed.
func EditChannelEmbed(s *discordgo.Session, channelID, messageID string, emb *discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageEditEmbed(channelID, messageID, emb)
	if err != nil {
		log.Printf("EditChannelEmbed error: %v", err)
	}
	return err
}

// SafeName returns a loggable name for a possibly nil user.
func SafeName(u *discordgo.User) string {
	if u == nil {
		return "<unknown>"
	}
	return u.Username
}

// UserOf extracts the interacting user from either guild or DM payloads.
func UserOf(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
