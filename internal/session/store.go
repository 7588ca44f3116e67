package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docorch/internal/domain"
)

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Store keeps sessions isolated from each other by ID. Idle sessions are dropped
// when new ones are created.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	idleTTL  time.Duration
	now      func() time.Time
}

// NewStore creates a Store. A non-positive idleTTL keeps sessions forever.
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*entry),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// SetClock overrides the time source.
func (st *Store) SetClock(now func() time.Time) {
	st.mu.Lock()
	st.now = now
	st.mu.Unlock()
}

// Create registers a new empty session.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.pruneLocked(now)

	s := New()
	st.sessions[s.ID()] = &entry{session: s, lastUsed: now}
	return s
}

// Get returns the session with id and marks it used.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	e.lastUsed = now
	return e.session, nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) expired(e *entry, now time.Time) bool {
	return st.idleTTL > 0 && now.Sub(e.lastUsed) > st.idleTTL
}

func (st *Store) pruneLocked(now time.Time) {
	if st.idleTTL <= 0 {
		return
	}
	for id, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, id)
		}
	}
}
