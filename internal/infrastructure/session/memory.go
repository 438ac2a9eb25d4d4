package session

import (
	"context"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

// DefaultTTL applies when no session lifetime is configured.
const DefaultTTL = 24 * time.Hour

type entry struct {
	email     string
	expiresAt time.Time
}

// MemoryStore is an in-memory SessionStore suitable for single-instance deployment. For multi-instance, use RedisStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	e, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.data[sessionID]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.data, sessionID)
		}
		s.mu.Unlock()
		return "", nil
	}
	return e.email, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = entry{email: email, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// DeleteExpired drops every expired session and reports how many were removed. Get already
// ignores expired entries; this only reclaims memory for sessions never read again.
func (s *MemoryStore) DeleteExpired(ctx context.Context) (int, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, id)
			n++
		}
	}
	return n, nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
