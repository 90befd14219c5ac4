package session

import (
	"context"
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process store for tests and local runs, backed by an
// expiring cache so retention behaves like the Redis store.
type MemoryStore struct {
	cache *gocache.Cache

	mu        sync.Mutex
	finalized map[string]bool

	// Fail forces every operation to report the store as unavailable.
	Fail bool

	clock func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemoryStore{
		cache:     gocache.New(ttl, 10*time.Minute),
		finalized: make(map[string]bool),
		clock:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, callID string) (CallSession, error) {
	if callID == "" {
		return CallSession{}, errors.New("call id is required")
	}
	if s.Fail {
		return CallSession{}, ErrUnavailable
	}
	if v, ok := s.cache.Get(callID); ok {
		return v.(CallSession), nil
	}
	return newSession(callID), nil
}

func (s *MemoryStore) Save(ctx context.Context, sess CallSession) error {
	if sess.CallID == "" {
		return errors.New("call id is required")
	}
	if s.Fail {
		return ErrUnavailable
	}
	now := s.clock().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now
	s.cache.SetDefault(sess.CallID, sess)
	return nil
}

func (s *MemoryStore) ClaimFinalize(ctx context.Context, callID string) (bool, error) {
	if callID == "" {
		return false, errors.New("call id is required")
	}
	if s.Fail {
		return false, ErrUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized[callID] {
		return false, nil
	}
	s.finalized[callID] = true
	return true, nil
}
