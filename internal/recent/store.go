// Package recent keeps the list of recently searched usernames.
package recent

import (
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
)

// Key is the storage key holding the JSON-encoded list.
const Key = "github_profile_fetcher_recent"

// MaxEntries is the number of usernames remembered.
const MaxEntries = 6

// ErrNotFound is returned by a Backend when a key has never been written.
var ErrNotFound = errors.New("recent: key not found")

// Backend is a persistent key/value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Store is the recent-search list backed by a persistent Backend.
// Persistence is best-effort: write failures are logged, never returned from Record.
type Store struct {
	backend Backend
	logger  *slog.Logger
	list    []string
}

// NewStore returns a store over backend and loads the persisted list.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{backend: backend, logger: logger}
	s.list = s.Load()
	return s
}

// Load reads the persisted list. Missing or corrupt data yields an empty list.
func (s *Store) Load() []string {
	raw, err := s.backend.Get(Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("recent: read failed", slog.String("error", err.Error()))
		}
		return []string{}
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("recent: discarding unreadable list", slog.String("error", err.Error()))
		return []string{}
	}

	list := make([]string, 0, MaxEntries)
	for _, it := range items {
		name, ok := it.(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		list = append(list, name)
		if len(list) == MaxEntries {
			break
		}
	}
	return list
}

// List returns the in-memory list, most recent first.
func (s *Store) List() []string {
	return slices.Clone(s.list)
}

// Record moves username to the front of the list and persists it.
// Earlier entries equal to username ignoring case are removed.
func (s *Store) Record(username string) []string {
	username = strings.TrimSpace(username)
	if username == "" {
		return s.List()
	}

	next := make([]string, 0, MaxEntries)
	next = append(next, username)
	for _, name := range s.list {
		if strings.EqualFold(name, username) {
			continue
		}
		next = append(next, name)
		if len(next) == MaxEntries {
			break
		}
	}
	s.list = next
	s.save()
	return s.List()
}

// Clear forgets every entry, in memory and in storage.
func (s *Store) Clear() error {
	s.list = []string{}
	if err := s.backend.Delete(Key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) save() {
	data, err := json.Marshal(s.list)
	if err != nil {
		s.logger.Warn("recent: encode failed", slog.String("error", err.Error()))
		return
	}
	if err := s.backend.Put(Key, data); err != nil {
		s.logger.Warn("recent: persist failed", slog.String("error", err.Error()))
	}
}
