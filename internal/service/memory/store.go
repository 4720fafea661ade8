package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandevgo/faqbot/internal/core"
)

type session struct {
	// turn serializes whole request turns for one session when callers opt in.
	turn sync.Mutex

	mu            sync.Mutex
	messages      []core.Message
	lastTouchedAt time.Time
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastTouchedAt = now
	s.mu.Unlock()
}

func (s *session) snapshot() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

type Option func(*Store)

// WithIDGenerator replaces the uuid-based session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithRemoveHook is called for every session that leaves the store.
func WithRemoveHook(fn func(sessionID string)) Option {
	return func(s *Store) { s.onRemove = fn }
}

// Store keeps a sliding window of the last maxTurns exchanges for at most
// maxSessions conversations. Sessions leave in creation order: lookups use
// Peek so reading or appending never refreshes a session's position.
//
// The cache has room for one session above the limit so a session created
// during a request outlives it until EvictIfOverCapacity runs.
type Store struct {
	sessions    *lru.Cache[string, *session]
	maxTurns    int
	maxSessions int
	newID       func() string
	now         func() time.Time
	onRemove    func(string)
}

func NewStore(maxTurns, maxSessions int, opts ...Option) (*Store, error) {
	if maxTurns < 1 || maxSessions < 1 {
		return nil, fmt.Errorf("invalid memory bounds: turns=%d sessions=%d", maxTurns, maxSessions)
	}

	s := &Store{
		maxTurns:    maxTurns,
		maxSessions: maxSessions,
		newID:       uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.NewWithEvict(maxSessions+1, func(id string, _ *session) {
		if s.onRemove != nil {
			s.onRemove(id)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	s.sessions = cache
	return s, nil
}

// GetOrCreate returns the id and a copy of the window of an existing session,
// or registers a fresh empty session when sessionID is empty or unknown.
func (s *Store) GetOrCreate(sessionID string) (string, []core.Message) {
	if sessionID != "" {
		if sess, ok := s.sessions.Peek(sessionID); ok {
			sess.touch(s.now())
			return sessionID, sess.snapshot()
		}
	}

	id := s.newID()
	s.sessions.Add(id, &session{lastTouchedAt: s.now()})
	return id, []core.Message{}
}

// Append records one human/assistant exchange and trims the window to maxTurns pairs.
func (s *Store) Append(sessionID string, human, assistant core.Message) error {
	sess, ok := s.sessions.Peek(sessionID)
	if !ok {
		return fmt.Errorf("append to %q: %w", sessionID, core.ErrSessionNotFound)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.messages = append(sess.messages, human, assistant)
	if limit := 2 * s.maxTurns; len(sess.messages) > limit {
		trimmed := make([]core.Message, limit)
		copy(trimmed, sess.messages[len(sess.messages)-limit:])
		sess.messages = trimmed
	}
	sess.lastTouchedAt = s.now()
	return nil
}

// EvictIfOverCapacity drops the earliest-created sessions until at most
// maxSessions remain and reports how many were removed.
func (s *Store) EvictIfOverCapacity() int {
	evicted := 0
	for s.sessions.Len() > s.maxSessions {
		if _, _, ok := s.sessions.RemoveOldest(); !ok {
			break
		}
		evicted++
	}
	return evicted
}

func (s *Store) History(sessionID string) ([]core.Message, error) {
	sess, ok := s.sessions.Peek(sessionID)
	if !ok {
		return nil, fmt.Errorf("history of %q: %w", sessionID, core.ErrSessionNotFound)
	}
	return sess.snapshot(), nil
}

// LastTouched reports when the session was last resumed or appended to.
// Reading the history does not count as a touch.
func (s *Store) LastTouched(sessionID string) (time.Time, error) {
	sess, ok := s.sessions.Peek(sessionID)
	if !ok {
		return time.Time{}, fmt.Errorf("last touch of %q: %w", sessionID, core.ErrSessionNotFound)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.lastTouchedAt, nil
}

func (s *Store) Forget(sessionID string) bool {
	return s.sessions.Remove(sessionID)
}

// LockTurn blocks until the caller owns the session's turn and returns the release func.
// Unknown sessions yield a no-op release.
func (s *Store) LockTurn(sessionID string) func() {
	sess, ok := s.sessions.Peek(sessionID)
	if !ok {
		return func() {}
	}
	sess.turn.Lock()
	return sess.turn.Unlock
}

func (s *Store) Len() int {
	return s.sessions.Len()
}

// SessionIDs lists live sessions from oldest to newest.
func (s *Store) SessionIDs() []string {
	return s.sessions.Keys()
}
