package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore keeps revoked user ids in process memory.
type RevocationStore struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{until: map[string]time.Time{}, now: time.Now}
}

func (s *RevocationStore) Revoke(ctx context.Context, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[userID] = s.now().Add(ttl)
	return nil
}

func (s *RevocationStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.until, userID)
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.until[userID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.until, userID)
		return false, nil
	}
	return true, nil
}
