// Package store keeps comparison results in memory with TTL eviction.
// Eviction removes the parked source PDFs from disk and leaves a tombstone
// so the request layer can answer Gone instead of Not Found.
package store

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KrUtHi96/sidebyside/internal/compare"
)

// State reports what the store knows about an id.
type State string

const (
	StateOK      State = "ok"
	StateMissing State = "missing"
	StateExpired State = "expired"
)

// tombstoneHorizon bounds how long evicted ids are remembered.
const tombstoneHorizon = 24 * time.Hour

// Stored is one saved comparison with its parked source files.
type Stored struct {
	ID           string
	Result       *compare.Result
	BasePath     string
	ComparedPath string
	CreatedAt    time.Time
}

type entry struct {
	stored    *Stored
	expiresAt time.Time
	evictedAt time.Time // zero until evicted
}

// Store is a thread-safe in-memory result registry with TTL eviction.
type Store struct {
	mu    sync.Mutex
	items map[string]*entry
	ttl   time.Duration
	log   *slog.Logger

	now func() time.Time
}

func New(ttl time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		items: make(map[string]*entry),
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Save registers a result together with the temp files backing the viewer,
// and returns the generated id.
func (s *Store) Save(res *compare.Result, basePath, comparedPath string) string {
	id := uuid.NewString()
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = &entry{
		stored: &Stored{
			ID:           id,
			Result:       res,
			BasePath:     basePath,
			ComparedPath: comparedPath,
			CreatedAt:    now,
		},
		expiresAt: now.Add(s.ttl),
	}
	return id
}

// Get returns the stored comparison, or nil when the id is unknown or
// already evicted.
func (s *Store) Get(id string) *Stored {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok || e.stored == nil {
		return nil
	}
	if s.now().After(e.expiresAt) {
		s.evictLocked(id, e)
		return nil
	}
	return e.stored
}

// GetState resolves both the result and its lifecycle state in one call.
func (s *Store) GetState(id string) (*Stored, State) {
	if st := s.Get(id); st != nil {
		return st, StateOK
	}
	return nil, s.State(id)
}

// State distinguishes ids that were never seen from ids whose result has
// been evicted.
func (s *Store) State(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return StateMissing
	}
	if e.stored != nil && !s.now().After(e.expiresAt) {
		return StateOK
	}
	return StateExpired
}

// Cleanup evicts expired results and forgets old tombstones. Run it
// periodically.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.items {
		if e.stored != nil && now.After(e.expiresAt) {
			s.evictLocked(id, e)
		}
		if e.stored == nil && now.Sub(e.evictedAt) > tombstoneHorizon {
			delete(s.items, id)
		}
	}
}

// Close evicts everything, removing all parked files.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.items {
		if e.stored != nil {
			s.evictLocked(id, e)
		}
	}
}

func (s *Store) evictLocked(id string, e *entry) {
	for _, path := range []string{e.stored.BasePath, e.stored.ComparedPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove parked file", "id", id, "path", path, "error", err)
		}
	}
	e.stored = nil
	e.evictedAt = s.now()
}
