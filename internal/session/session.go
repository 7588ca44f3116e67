// Package session holds per-user extraction state between the extract and alert actions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docorch/internal/domain"
)

// Action names a user-triggered operation that may not overlap with itself.
type Action string

const (
	ActionExtract Action = "extract"
	ActionAlert   Action = "alert"
)

// Session is the state of one interactive session. It starts empty, becomes populated
// on the first successful extraction, and is overwritten by each later one.
type Session struct {
	id        uuid.UUID
	createdAt time.Time

	mu    sync.RWMutex
	state *domain.SessionState

	busyMu sync.Mutex
	busy   map[Action]bool
}

// New creates an empty session.
func New() *Session {
	return &Session{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		busy:      make(map[Action]bool),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Set replaces the document name, question, text and result together.
func (s *Session) Set(filename, question, text string, result domain.StructuredResult) {
	next := &domain.SessionState{
		Filename:  filename,
		Question:  question,
		RawText:   text,
		Result:    result,
		UpdatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// Get returns the current snapshot; ok is false while the session is empty.
func (s *Session) Get() (state domain.SessionState, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return domain.SessionState{}, false
	}
	return *s.state, true
}

// Info describes the session for API responses.
func (s *Session) Info() domain.SessionInfo {
	info := domain.SessionInfo{ID: s.id, CreatedAt: s.createdAt}
	if st, ok := s.Get(); ok {
		info.Populated = true
		info.State = &st
	}
	return info
}

// TryBegin marks action as in flight. It returns domain.ErrSessionBusy if the same
// action is already running in this session.
func (s *Session) TryBegin(action Action) error {
	s.busyMu.Lock()
	defer s.busyMu.Unlock()
	if s.busy[action] {
		return domain.ErrSessionBusy
	}
	s.busy[action] = true
	return nil
}

// End clears the in-flight mark set by TryBegin.
func (s *Session) End(action Action) {
	s.busyMu.Lock()
	delete(s.busy, action)
	s.busyMu.Unlock()
}
