// internal/app/pending.go
// Reports waiting on the reporter's confirm/cancel click, keyed by the
// status message id.
package app

import (
	"sync"
	"time"

	"github.com/rlfranchise/bcgroups-bot/internal/domain/match"
	"github.com/rlfranchise/bcgroups-bot/internal/domain/team"
	"github.com/rlfranchise/bcgroups-bot/internal/engine"
)

// pendingTTL bounds how long a confirm prompt stays clickable.
const pendingTTL = 15 * time.Minute

type pendingReport struct {
	GuildID    string
	InvokerID  string
	Match      match.Match
	Resolution *engine.Resolution
	TopGroup   string
	Token      string
	TeamName   string
	Roster     []team.Member
	Created    time.Time
}

type pendingReports struct {
	mu   sync.Mutex
	byID map[string]pendingReport // message id -> report
}

func newPendingReports() *pendingReports {
	return &pendingReports{byID: map[string]pendingReport{}}
}

func (p *pendingReports) Put(messageID string, r pendingReport) {
	r.Created = time.Now()
	p.mu.Lock()
	p.byID[messageID] = r
	p.sweepLocked()
	p.mu.Unlock()
}

// Take removes and returns the report for a message, if one is still live.
func (p *pendingReports) Take(messageID string) (pendingReport, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.byID[messageID]
	if !ok {
		return pendingReport{}, false
	}
	delete(p.byID, messageID)
	if time.Since(r.Created) > pendingTTL {
		return pendingReport{}, false
	}
	return r, true
}

func (p *pendingReports) Remove(messageID string) {
	p.mu.Lock()
	delete(p.byID, messageID)
	p.mu.Unlock()
}

func (p *pendingReports) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

// sweepLocked drops expired entries. Caller must hold the mutex.
func (p *pendingReports) sweepLocked() {
	now := time.Now()
	for id, r := range p.byID {
		if now.Sub(r.Created) > pendingTTL {
			delete(p.byID, id)
		}
	}
}
