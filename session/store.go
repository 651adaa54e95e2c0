package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Info is the observable summary of a session.
type Info struct {
	SessionID    string         `json:"session_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastUpdated  time.Time      `json:"last_updated"`
	MessageCount int            `json:"message_count"`
	Context      map[string]any `json:"context"`
}

// Store owns all sessions for the process. Growth is bounded by both a
// max session count (least-recently-used eviction) and a TTL.
type Store struct {
	options  Options
	sessions *expirable.LRU[string, *Session]
	mtx      sync.Mutex
}

// GetOrCreate returns the session for key, creating it on first use.
func (s *Store) GetOrCreate(key string) *Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if session, ok := s.sessions.Get(key); ok {
		return session
	}

	session := newSession(key)
	s.sessions.Add(key, session)

	slog.InfoContext(s.options.Context, "created new session", "session_id", key)

	return session
}

// Get returns the session for key without creating one.
func (s *Store) Get(key string) (*Session, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.sessions.Get(key)
}

// Clear removes the session entirely; a later GetOrCreate starts fresh.
func (s *Store) Clear(key string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.sessions.Remove(key) {
		slog.InfoContext(s.options.Context, "cleared session", "session_id", key)
	}
}

func (s *Store) Len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.sessions.Len()
}

// Info reports on a session without mutating it.
func (s *Store) Info(key string) (Info, bool) {
	s.mtx.Lock()
	session, ok := s.sessions.Peek(key)
	s.mtx.Unlock()

	if !ok {
		return Info{}, false
	}

	return Info{
		SessionID:    session.ID(),
		CreatedAt:    session.CreatedAt(),
		LastUpdated:  session.LastUpdated(),
		MessageCount: session.Len(),
		Context:      session.Context(),
	}, true
}

func NewStore(opts ...Option) *Store {
	options := NewOptions(opts...)

	onEvict := func(key string, _ *Session) {
		slog.InfoContext(options.Context, "evicted session", "session_id", key)
	}

	return &Store{
		options:  options,
		sessions: expirable.NewLRU(options.MaxSessions, onEvict, options.TTL),
	}
}
