package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

type sessionEntry struct {
	state    entities.QuizState
	lastSeen time.Time
}

// SessionStorage provides in-memory storage for quiz state by session ID.
// Sessions in the initial state are not stored: an unknown session already reads as initial.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Get returns the state of a session, or the initial state for an unknown session.
func (s *SessionStorage) Get(sessionID string) entities.QuizState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return entities.NewQuizState()
	}
	return e.state
}

// Update applies fn to the session state and stores the result.
// The read and the write happen under one lock.
func (s *SessionStorage) Update(sessionID string, fn func(entities.QuizState) entities.QuizState) entities.QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := entities.NewQuizState()
	if e, ok := s.sessions[sessionID]; ok {
		st = e.state
	}

	st = fn(st)
	if st == entities.NewQuizState() {
		delete(s.sessions, sessionID)
		return st
	}

	s.sessions[sessionID] = sessionEntry{state: st, lastSeen: s.now()}
	return st
}

// Delete removes the state of a session.
func (s *SessionStorage) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of tracked sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions not updated within idle and returns how many were removed.
func (s *SessionStorage) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is cancelled.
// A non-positive interval or idle disables sweeping.
func (s *SessionStorage) RunJanitor(ctx context.Context, interval, idle time.Duration, onSweep func(removed int)) error {
	if interval <= 0 || idle <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.Sweep(idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
