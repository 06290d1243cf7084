package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Token   string
	AppID   string
	GuildID string

	// StorePath is where guild settings / linked accounts live on disk.
	StorePath string

	// DefaultBCToken lets a single-guild deploy skip /setauthtoken.
	DefaultBCToken string

	// AdminRoleIDs are roles that may run privileged commands in addition
	// to members with the Administrator permission.
	AdminRoleIDs []string

	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		Token:          os.Getenv("DISCORD_BOT_TOKEN"),
		AppID:          os.Getenv("DISCORD_APP_ID"),
		GuildID:        os.Getenv("DISCORD_GUILD_ID"),
		StorePath:      firstNonEmpty(os.Getenv("BOT_STORE_PATH"), "data/settings.json"),
		DefaultBCToken: os.Getenv("BALLCHASING_TOKEN"),
		AdminRoleIDs:   splitIDs(os.Getenv("ADMIN_ROLE_IDS")),
		LogLevel:       firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	if cfg.Token == "" {
		return nil, errors.New("missing DISCORD_BOT_TOKEN")
	}
	if cfg.AppID == "" {
		return nil, errors.New("missing DISCORD_APP_ID")
	}
	// GuildID empty means global command registration, that is fine.

	return cfg, nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func firstNonEmpty(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func (c *Config) Redacted() string {
	tok := "[set]"
	if c.Token == "" {
		tok = "[empty]"
	}
	bc := "[set]"
	if c.DefaultBCToken == "" {
		bc = "[empty]"
	}
	return fmt.Sprintf(
		"appID=%s guildID=%s storePath=%s logLevel=%s token=%s bcToken=%s",
		c.AppID, c.GuildID, c.StorePath, c.LogLevel, tok, bc,
	)
}
