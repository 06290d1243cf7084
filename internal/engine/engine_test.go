package engine

import (
	"context"
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.IngestDelay != 7*time.Second {
		t.Fatalf("ingest delay %v", o.IngestDelay)
	}
	if o.Visibility != "public" {
		t.Fatalf("visibility %q", o.Visibility)
	}
	if o.TeamIdentification != "by-player-clusters" || o.PlayerIdentification != "by-id" {
		t.Fatalf("identification %q/%q", o.TeamIdentification, o.PlayerIdentification)
	}
	if o.DeepSearchLimit != 4 {
		t.Fatalf("deep search limit %d", o.DeepSearchLimit)
	}

	// explicit settings survive
	o = Options{IngestDelay: -1, Visibility: "private", DeepSearchLimit: 2}.withDefaults()
	if o.IngestDelay != -1 || o.Visibility != "private" || o.DeepSearchLimit != 2 {
		t.Fatalf("overrides lost: %+v", o)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wait(ctx, time.Hour); err == nil {
		t.Fatalf("cancelled wait returned nil")
	}

	// non-positive delays never block
	start := time.Now()
	if err := wait(context.Background(), -1); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("negative delay slept")
	}
}
