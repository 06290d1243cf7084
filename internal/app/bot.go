// Package app wires the Discord surface to the replay engine: slash command
// routing, the report confirmation flow, event subscribers, and the match
// day scheduler.
package app

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
	d "github.com/rlfranchise/bcgroups-bot/internal/adapters/discord"
	"github.com/rlfranchise/bcgroups-bot/internal/engine"
	"github.com/rlfranchise/bcgroups-bot/internal/roster"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
	"github.com/rlfranchise/bcgroups-bot/pkg/config"
)

type Bot struct {
	Sess   *discordgo.Session
	Cfg    *config.Config
	Log    zerolog.Logger
	Store  *store.Store
	Roster *roster.Registry

	pending *pendingReports

	cancelBus  func()
	stopTicker func()
}

func NewBot(s *discordgo.Session, cfg *config.Config, log zerolog.Logger, st *store.Store) *Bot {
	d.SetAdminRoles(cfg.AdminRoleIDs)
	return &Bot{
		Sess:    s,
		Cfg:     cfg,
		Log:     log,
		Store:   st,
		Roster:  roster.New(st),
		pending: newPendingReports(),
	}
}

func (b *Bot) RegisterHandlers() {
	b.Sess.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.HandleInteraction(s, i)
	})

	b.cancelBus = b.StartEventSubscribers()
	b.stopTicker = b.StartMatchDayTicker()

	if err := RegisterCommands(b.Sess, b.Cfg.AppID, b.Cfg.GuildID); err != nil {
		b.Log.Error().Err(err).Msg("slash command registration failed")
	}
}

// Stop tears down the bus subscribers and the match day ticker.
func (b *Bot) Stop() {
	if b.cancelBus != nil {
		b.cancelBus()
	}
	if b.stopTicker != nil {
		b.stopTicker()
	}
}

// engineFor builds a replay engine bound to one member's auth token.
func (b *Bot) engineFor(token string) *engine.Engine {
	return engine.New(ballchasing.New("", token), b.Log, engine.Options{})
}

// tokenFor resolves the auth token that owns a season group: the owner's
// registered token, else the deploy-wide default.
func (b *Bot) tokenFor(sg store.SeasonGroup) (string, bool) {
	if tok, err := b.Store.Token(sg.OwnerID); err == nil {
		return tok, true
	}
	if b.Cfg.DefaultBCToken != "" {
		return b.Cfg.DefaultBCToken, true
	}
	return "", false
}

// guildOf returns the guild with members populated, preferring state cache.
func (b *Bot) guildOf(guildID string) (*discordgo.Guild, error) {
	if g, err := b.Sess.State.Guild(guildID); err == nil && len(g.Members) > 0 {
		return g, nil
	}
	g, err := b.Sess.Guild(guildID)
	if err != nil {
		return nil, err
	}
	if len(g.Members) == 0 {
		if members, err := b.Sess.GuildMembers(guildID, "", 1000); err == nil {
			g.Members = members
		}
	}
	return g, nil
}
