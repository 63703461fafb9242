package engine

import (
	"sync"

	"github.com/ecard-vn/ecard/internal/domains/entities"
)

// MatchRegistry owns every match record, active and finished, keyed by
// match id. Lookups hand out deep copies so callers never share slot
// slices with the registry.
type MatchRegistry struct {
	mu      sync.RWMutex
	matches map[string]entities.Match
	order   []string
}

func NewMatchRegistry() *MatchRegistry {
	return &MatchRegistry{matches: map[string]entities.Match{}}
}

func (r *MatchRegistry) Create(match entities.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.matches[match.Id]; exists {
		return ErrDuplicateId
	}
	r.matches[match.Id] = match.Clone()
	r.order = append(r.order, match.Id)
	return nil
}

// FindByUser returns the first playing match, in insertion order, where
// the user is on either side. Used by reconnecting clients.
func (r *MatchRegistry) FindByUser(userId string) (entities.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		match, ok := r.matches[id]
		if !ok {
			continue
		}
		if match.Status != entities.MatchStatusPlaying {
			continue
		}
		if match.Player1Id == userId || match.Player2Id == userId {
			return match.Clone(), true
		}
	}
	return entities.Match{}, false
}

func (r *MatchRegistry) FindById(matchId string) (entities.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	match, ok := r.matches[matchId]
	if !ok {
		return entities.Match{}, false
	}
	return match.Clone(), true
}

func (r *MatchRegistry) Update(match entities.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.matches[match.Id]; !exists {
		return ErrNotFound
	}
	r.matches[match.Id] = match.Clone()
	return nil
}

// Remove hard-deletes the record. Removing an absent id is a no-op.
func (r *MatchRegistry) Remove(matchId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.matches[matchId]; !exists {
		return
	}
	delete(r.matches, matchId)
	for i, id := range r.order {
		if id == matchId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Matches returns a snapshot copy in insertion order for persistence.
func (r *MatchRegistry) Matches() []entities.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]entities.Match, 0, len(r.order))
	for _, id := range r.order {
		if match, ok := r.matches[id]; ok {
			matches = append(matches, match.Clone())
		}
	}
	return matches
}

// Restore replaces the registry contents, used at startup.
func (r *MatchRegistry) Restore(matches []entities.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = make(map[string]entities.Match, len(matches))
	r.order = make([]string, 0, len(matches))
	for _, match := range matches {
		if _, exists := r.matches[match.Id]; exists {
			continue
		}
		r.matches[match.Id] = match.Clone()
		r.order = append(r.order, match.Id)
	}
}
