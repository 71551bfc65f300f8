package agroclient

import (
	"sync"
	"time"
)

// Session is what a signed-in client keeps between requests
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    int64
	Role      string
}

// SessionEvent is published on every SetSession/ClearSession; Session is nil after a clear.
type SessionEvent struct {
	Session *Session
}

// AuthStore owns the bearer token. Components that need to react to sign-in or
// sign-out subscribe instead of polling the token.
type AuthStore interface {
	GetToken() string
	SetSession(s Session)
	ClearSession()
	Subscribe() (<-chan SessionEvent, func())
}

// MemoryStore is an AuthStore kept in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
	subs    map[int]chan SessionEvent
	nextID  int
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs: make(map[int]chan SessionEvent),
		now:  time.Now,
	}
}

// GetToken returns "" when no session is set or it has expired
func (s *MemoryStore) GetToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	if !s.session.ExpiresAt.IsZero() && !s.now().Before(s.session.ExpiresAt) {
		return ""
	}
	return s.session.Token
}

func (s *MemoryStore) SetSession(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	copied := session
	s.publish(SessionEvent{Session: &copied})
}

func (s *MemoryStore) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.session = nil
	s.publish(SessionEvent{})
}

// Subscribe returns a channel of session events and a func that ends the subscription.
// Slow subscribers miss events rather than block the store.
func (s *MemoryStore) Subscribe() (<-chan SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan SessionEvent, 8)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with mu held
func (s *MemoryStore) publish(ev SessionEvent) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
