package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ecard-vn/ecard/internal/domains/entities"
)

const (
	usersFile   = "users.json"
	matchesFile = "matches.json"
	waitingFile = "waiting.json"
)

// FileStore keeps each collection in its own JSON file under a data
// directory. Writes go through a temp file and rename so a crash mid-write
// leaves the previous snapshot intact.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := Snapshot{
		Users:   []entities.User{},
		Matches: []entities.Match{},
		Waiting: []entities.WaitingEntry{},
	}
	if err := s.readFile(usersFile, &snapshot.Users); err != nil {
		return Snapshot{}, err
	}
	if err := s.readFile(matchesFile, &snapshot.Matches); err != nil {
		return Snapshot{}, err
	}
	if err := s.readFile(waitingFile, &snapshot.Waiting); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *FileStore) SaveUsers(_ context.Context, users []entities.User) error {
	return s.writeFile(usersFile, users)
}

func (s *FileStore) SaveMatches(_ context.Context, matches []entities.Match) error {
	return s.writeFile(matchesFile, matches)
}

func (s *FileStore) SaveWaiting(_ context.Context, waiting []entities.WaitingEntry) error {
	return s.writeFile(waitingFile, waiting)
}

// readFile decodes one collection. A missing file is an empty collection.
func (s *FileStore) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) writeFile(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
