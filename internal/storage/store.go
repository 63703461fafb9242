package storage

import (
	"context"

	"github.com/ecard-vn/ecard/internal/domains/entities"
)

// Snapshot is the persisted state: three independent collections, loaded
// once at startup and written back collection by collection on mutation.
type Snapshot struct {
	Users   []entities.User         `json:"users"`
	Matches []entities.Match        `json:"matches"`
	Waiting []entities.WaitingEntry `json:"waiting"`
}

type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	SaveUsers(ctx context.Context, users []entities.User) error
	SaveMatches(ctx context.Context, matches []entities.Match) error
	SaveWaiting(ctx context.Context, waiting []entities.WaitingEntry) error
}
