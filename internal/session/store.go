// Package session is the in-memory ledger of interview conversations.
// It stores ordered turns per session and hands scoring callers a copy
// of the history; it never computes scores itself.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"hirepulse/internal/errors"
	"hirepulse/internal/types"
)

// Session is one interview conversation. Turns are append-only and kept
// in arrival order.
type Session struct {
	ID            string            `json:"id"`
	CandidateName string            `json:"candidate_name,omitempty"`
	PositionID    string            `json:"position_id,omitempty"`
	Turns         []types.Turn      `json:"turns"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Store is a uuid-keyed in-memory session store. Idle sessions are
// evicted by a background goroutine once they exceed the TTL; a zero
// TTL disables eviction. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
	logger   *errors.Logger
}

// NewStore creates a session store and starts the eviction goroutine
// when a TTL is set. Callers must Close the store on shutdown.
func NewStore(ttl time.Duration, logger *errors.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
		logger:   logger,
	}

	if ttl > 0 {
		go s.cleanupRoutine(ttl / 2)
	}
	return s
}

// Create starts a new session and returns it.
func (s *Store) Create(candidateName, positionID string, metadata map[string]string) *Session {
	now := time.Now()
	session := &Session{
		ID:            uuid.NewString(),
		CandidateName: candidateName,
		PositionID:    positionID,
		Turns:         []types.Turn{},
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("Session created", "session_id", session.ID)
	}
	return s.snapshot(session)
}

// Get returns a copy of the session, so callers can read the turn
// history without holding the store lock.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError(errors.ErrCodeSessionNotFound,
			"session not found", nil).WithContext("session_id", id)
	}
	return s.snapshot(session), nil
}

// AppendTurn adds a turn to the session. A zero timestamp is stamped
// with the current time.
func (s *Store) AppendTurn(id string, turn types.Turn) (*Session, error) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError(errors.ErrCodeSessionNotFound,
			"session not found", nil).WithContext("session_id", id)
	}

	session.Turns = append(session.Turns, turn)
	session.UpdatedAt = time.Now()
	return s.snapshot(session), nil
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction goroutine. Should be called when shutting
// down the server.
func (s *Store) Close() {
	close(s.done)
}

// snapshot copies a session so the caller owns its turn slice. Callers
// must hold at least a read lock.
func (s *Store) snapshot(session *Session) *Session {
	out := *session
	out.Turns = make([]types.Turn, len(session.Turns))
	copy(out.Turns, session.Turns)
	return &out
}

func (s *Store) cleanupRoutine(interval time.Duration) {
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup evicts sessions idle for longer than the TTL.
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	evicted := 0
	for id, session := range s.sessions {
		if now.Sub(session.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}

	if s.logger != nil && evicted > 0 {
		s.logger.Debug("Session cleanup completed",
			"evicted", evicted,
			"remaining", len(s.sessions))
	}
}
