package engine

import (
	"sync"
	"time"

	"github.com/ecard-vn/ecard/internal/domains/entities"
)

// WaitingPool holds players queued for an opponent. Matchmaking is FIFO:
// the entry with the earliest timestamp is offered first. Entries expire
// after a TTL and are dropped before being offered.
type WaitingPool struct {
	mu      sync.Mutex
	entries []entities.WaitingEntry
}

func NewWaitingPool() *WaitingPool {
	return &WaitingPool{entries: []entities.WaitingEntry{}}
}

// Enqueue appends a waiting entry. No per-user uniqueness is enforced: a
// user joining twice queues twice.
func (p *WaitingPool) Enqueue(userId, username string, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entities.WaitingEntry{
		UserId:    userId,
		Username:  username,
		Timestamp: now,
	})
}

// DequeueOldestValid purges expired entries, then removes and returns the
// entry with the earliest timestamp among the remainder.
func (p *WaitingPool) DequeueOldestValid(now time.Time, ttl time.Duration) (entities.WaitingEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.purgeExpired(now, ttl)
	if len(p.entries) == 0 {
		return entities.WaitingEntry{}, false
	}
	oldest := 0
	for i, entry := range p.entries {
		if entry.Timestamp.Before(p.entries[oldest].Timestamp) {
			oldest = i
		}
	}
	entry := p.entries[oldest]
	p.entries = append(p.entries[:oldest], p.entries[oldest+1:]...)
	return entry, true
}

// RemoveByUser drops every entry for the user.
func (p *WaitingPool) RemoveByUser(userId string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.entries[:0]
	for _, entry := range p.entries {
		if entry.UserId != userId {
			kept = append(kept, entry)
		}
	}
	p.entries = kept
}

// PurgeExpired removes entries older than the TTL and reports how many
// were dropped.
func (p *WaitingPool) PurgeExpired(now time.Time, ttl time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.purgeExpired(now, ttl)
}

func (p *WaitingPool) purgeExpired(now time.Time, ttl time.Duration) int {
	kept := p.entries[:0]
	purged := 0
	for _, entry := range p.entries {
		if now.Sub(entry.Timestamp) >= ttl {
			purged++
			continue
		}
		kept = append(kept, entry)
	}
	p.entries = kept
	return purged
}

func (p *WaitingPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Entries returns a snapshot copy for persistence.
func (p *WaitingPool) Entries() []entities.WaitingEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entities.WaitingEntry{}, p.entries...)
}

// Restore replaces the pool contents, used at startup.
func (p *WaitingPool) Restore(entries []entities.WaitingEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append([]entities.WaitingEntry{}, entries...)
}
