package memory

import (
	"context"
	"sync"
	"time"
)

// NonceStore implements ports.NonceStore for single-process runs without Redis.
type NonceStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewNonceStore() *NonceStore {
	return &NonceStore{seen: make(map[string]time.Time), now: time.Now}
}

// CheckAndSet returns true the first time scope+nonce is seen within ttl.
func (s *NonceStore) CheckAndSet(_ context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	now := s.now()
	key := scope + ":" + nonce

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, exp := range s.seen {
		if !now.Before(exp) {
			delete(s.seen, k)
		}
	}
	if _, used := s.seen[key]; used {
		return false, nil
	}
	s.seen[key] = now.Add(ttl)
	return true, nil
}
