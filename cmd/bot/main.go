// Command bot starts the replay filing bot.
//
// this binary:
//  1. loads config from environment variables (.env during dev)
//  2. opens the settings store
//  3. creates a discord session and registers the app handlers
//  4. opens the gateway connection and waits for an OS signal to exit
package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rlfranchise/bcgroups-bot/internal/app"
	"github.com/rlfranchise/bcgroups-bot/internal/store"
	"github.com/rlfranchise/bcgroups-bot/pkg/config"
)

func main() {
	// load .env for local development.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	if dir := filepath.Dir(cfg.StorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.Fatal().Err(err).Msg("store dir error")
		}
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("store error")
	}

	// the "Bot " prefix is required for bot tokens
	sess, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("discord session error")
	}

	// GuildMembers is needed to resolve rosters from team roles.
	sess.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers
	sess.State.MaxMessageCount = 0
	sess.StateEnabled = true

	b := app.NewBot(sess, cfg, log, st)
	b.RegisterHandlers()
	defer b.Stop()

	if err := sess.Open(); err != nil {
		log.Fatal().Err(err).Msg("open gateway error")
	}
	defer sess.Close()

	log.Info().Msgf("🤖 bot ready - %s", cfg.Redacted())

	// block until SIGINT/SIGTERM for a clean shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
