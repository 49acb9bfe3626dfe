// internal/store/memory.go
//
// In-memory registry of live rounds.
// Rounds are never persisted: state is lost when the process restarts.
//
// Characteristics:
//   - Stores *Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sweep drops sessions idle since before a cutoff so abandoned rounds do not pile up.
//   - Touch records activity so rounds still in play survive Sweep.
//   - ErrNotFound is returned for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/round"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("store: round not found")

// Session is a live round plus the bookkeeping the server needs.
type Session struct {
	ID        string
	Mode      string // "random" | "daily"
	CreatedAt time.Time
	LastSeen  time.Time // guarded by the store; zero means CreatedAt
	Engine    *round.Engine
}

// Store defines the registry interface for live rounds.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Touch marks a session as active at the given time, or ErrNotFound.
	Touch(ctx context.Context, id string, at time.Time) error

	// Sweep removes sessions last active before cutoff and reports how many went.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports how many sessions are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("store: session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Touch(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if at.After(s.LastSeen) {
		s.LastSeen = at
	}
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		seen := s.LastSeen
		if seen.IsZero() {
			seen = s.CreatedAt
		}
		if seen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
