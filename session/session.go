package session

import (
	"maps"
	"sync"
	"time"
)

// Turn is the timestamp-free view of a message handed to downstream
// callers (prompt building, classification context).
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds one conversation: an append-only message history plus
// a last-write-wins context map for remembered attributes. History is
// never truncated in storage; View exposes a bounded window.
type Session struct {
	id          string
	createdAt   time.Time
	lastUpdated time.Time
	messages    []Message
	context     map[string]any
	turnMtx     sync.Mutex
	mtx         sync.RWMutex
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.createdAt
}

func (s *Session) LastUpdated() time.Time {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.lastUpdated
}

func (s *Session) Append(role string, content string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now().UTC()

	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})

	s.lastUpdated = now
}

// View returns the last n turns in chronological order.
func (s *Session) View(n int) []Turn {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	msgs := s.messages
	if n >= 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}

	turns := make([]Turn, 0, len(msgs))
	for _, msg := range msgs {
		turns = append(turns, Turn{Role: msg.Role, Content: msg.Content})
	}

	return turns
}

func (s *Session) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.messages)
}

func (s *Session) SetContext(key string, value any) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.context[key] = value
	s.lastUpdated = time.Now().UTC()
}

// Context returns a snapshot of the remembered attributes.
func (s *Session) Context() map[string]any {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	cpy := make(map[string]any, len(s.context))
	maps.Copy(cpy, s.context)
	return cpy
}

// Lock serializes whole turns on this session. History order is part
// of the contract fed to the classifier, so two turns on the same
// session must never interleave.
func (s *Session) Lock() {
	s.turnMtx.Lock()
}

func (s *Session) Unlock() {
	s.turnMtx.Unlock()
}

func newSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		id:          id,
		createdAt:   now,
		lastUpdated: now,
		messages:    []Message{},
		context:     map[string]any{},
	}
}
