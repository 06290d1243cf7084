// internal/app/commands.go
package app

import "github.com/bwmarrin/discordgo"

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "bcreport",
		Description: "Find and file the replays of your team's match",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "opponent",
				Description: "Opposing team name or tag",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Match type: regular, scrim, playoff, preseason",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "day",
				Description: "Match day (defaults to the current one)",
			},
		},
	},
	{
		Name:        "forcebcreport",
		Description: "Admin: report for any team, skipping the already-reported check",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Reporting team name or tag",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "opponent",
				Description: "Opposing team name or tag",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Match type: regular, scrim, playoff, preseason",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "day",
				Description: "Match day (defaults to the current one)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "deep",
				Description: "Search every roster account instead of stopping at the first hit",
			},
		},
	},
	{
		Name:        "match",
		Description: "Show a team's reported result for a match day",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "day",
				Description: "Match day (defaults to the current one)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Team name or tag (defaults to your team)",
			},
		},
	},
	{
		Name:        "matchdaysummary",
		Description: "Reported results of every team for a match day",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "day",
				Description: "Match day (defaults to the current one)",
			},
		},
	},
	{
		Name:        "seasonresults",
		Description: "A team's season record so far",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Team name or tag (defaults to your team)",
			},
		},
	},
	{
		Name:        "setseasongroup",
		Description: "Register the season's top-level replay group for your team",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "Group code from the group page URL",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Team name or tag (defaults to your team)",
			},
		},
	},
	{
		Name:        "seasongroup",
		Description: "Link to a team's season replay group",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Team name or tag (defaults to your team)",
			},
		},
	},
	{
		Name:        "setmatchdays",
		Description: "Admin: register the season's match dates",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "dates",
				Description: "Comma-separated M/D/YYYY dates",
				Required:    true,
			},
		},
	},
	{
		Name:        "matchday",
		Description: "Show the current match day",
		Type:        discordgo.ChatApplicationCommand,
	},
	{
		Name:        "nextmatchday",
		Description: "Admin: advance the match day by one",
		Type:        discordgo.ChatApplicationCommand,
	},
	{
		Name:        "setauthtoken",
		Description: "Register your replay service auth token (DM recommended)",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "token",
				Description: "Upload token from your account settings, empty to clear",
			},
		},
	},
	{
		Name:        "roster",
		Description: "Show a team's roster and linked accounts",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Team name or tag (defaults to your team)",
			},
		},
	},
	{
		Name:        "teams",
		Description: "List the registered franchise teams",
		Type:        discordgo.ChatApplicationCommand,
	},
	{
		Name:        "registerteam",
		Description: "Admin: register a team role (named \"Name (TAG)\")",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The team's role",
				Required:    true,
			},
		},
	},
	{
		Name:        "unregisterteam",
		Description: "Admin: unregister a team role",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The team's role",
				Required:    true,
			},
		},
	},
	{
		Name:        "accounts",
		Description: "Manage your linked platform accounts",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Link a platform account",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "platform",
						Description: "steam, xbox, ps4, ps5 or epic",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "Platform account id",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Unlink a platform account",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "platform",
						Description: "steam, xbox, ps4, ps5 or epic",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "Platform account id",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show your linked accounts",
			},
		},
	},
}

// RegisterCommands creates (or updates) the application commands. guildID ""
// registers them globally.
func RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, c := range commands {
		if _, err := s.ApplicationCommandCreate(appID, guildID, c); err != nil {
			return err
		}
	}
	return nil
}
