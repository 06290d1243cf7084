// Package engine is the match replay resolution and filing core: it locates
// the replays behind a reported series, resolves the destination folder in
// the season group hierarchy, and files the replay files there. It talks to
// the replay service through a narrow interface and holds no state between
// invocations beyond its options.
package engine

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
)

// ReplayService is the slice of the replay-service client the engine needs.
// *ballchasing.Client satisfies it; tests substitute a stub.
type ReplayService interface {
	SearchReplays(ctx context.Context, f ballchasing.SearchFilter) (*ballchasing.ReplayPage, error)
	ReplaysInGroup(ctx context.Context, groupID string) (*ballchasing.ReplayPage, error)
	DownloadReplay(ctx context.Context, id string) ([]byte, error)
	PatchReplay(ctx context.Context, id string, fields map[string]string) error
	ListGroups(ctx context.Context, parent, creator string) (*ballchasing.GroupPage, error)
	CreateGroup(ctx context.Context, name, parent, teamIdent, playerIdent string) (*ballchasing.Group, error)
	UploadReplay(ctx context.Context, filename string, file io.Reader, groupID, visibility string) (*ballchasing.UploadResult, error)
}

// Options tune the engine. Zero fields take the service defaults below.
type Options struct {
	// IngestDelay is honored before the first search query, giving the
	// service's own auto-upload pipeline time to ingest a game that just
	// ended. Skipping it causes false "no replays found" on fresh reports.
	// Negative disables the wait entirely.
	IngestDelay time.Duration

	Visibility           string
	TeamIdentification   string
	PlayerIdentification string

	// DeepSearchLimit bounds the concurrent per-account queries in deep
	// search mode.
	DeepSearchLimit int
}

const (
	defaultIngestDelay     = 7 * time.Second
	defaultVisibility      = "public"
	defaultTeamIdent       = "by-player-clusters"
	defaultPlayerIdent     = "by-id"
	defaultDeepSearchLimit = 4
)

func (o Options) withDefaults() Options {
	if o.IngestDelay == 0 {
		o.IngestDelay = defaultIngestDelay
	}
	if o.Visibility == "" {
		o.Visibility = defaultVisibility
	}
	if o.TeamIdentification == "" {
		o.TeamIdentification = defaultTeamIdent
	}
	if o.PlayerIdentification == "" {
		o.PlayerIdentification = defaultPlayerIdent
	}
	if o.DeepSearchLimit <= 0 {
		o.DeepSearchLimit = defaultDeepSearchLimit
	}
	return o
}

// Engine runs one resolution-and-filing flow per call. Safe for concurrent
// use; every method takes its state from arguments.
type Engine struct {
	svc  ReplayService
	log  zerolog.Logger
	opts Options
	rng  *rand.Rand
}

// New builds an Engine over the given service client.
func New(svc ReplayService, log zerolog.Logger, opts Options) *Engine {
	return &Engine{
		svc:  svc,
		log:  log.With().Str("component", "engine").Logger(),
		opts: opts.withDefaults(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// wait sleeps for d unless the context ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
