package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values under call-scoped keys with a
// retention TTL. There is no explicit delete path; expiry is the cleanup.
type RedisStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	clock func() time.Time
}

const defaultSessionTTL = 24 * time.Hour

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, clock: time.Now}
}

func sessionKey(callID string) string  { return "call:" + callID + ":session" }
func finalizeKey(callID string) string { return "call:" + callID + ":finalized" }

func (s *RedisStore) Load(ctx context.Context, callID string) (CallSession, error) {
	if callID == "" {
		return CallSession{}, errors.New("call id is required")
	}
	raw, err := s.rdb.Get(ctx, sessionKey(callID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return newSession(callID), nil
	}
	if err != nil {
		return CallSession{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var sess CallSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt session is unrecoverable for this call; start over
		// rather than failing every remaining turn.
		return newSession(callID), nil
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess CallSession) error {
	if sess.CallID == "" {
		return errors.New("call id is required")
	}
	now := s.clock().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.CallID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) ClaimFinalize(ctx context.Context, callID string) (bool, error) {
	if callID == "" {
		return false, errors.New("call id is required")
	}
	ok, err := s.rdb.SetNX(ctx, finalizeKey(callID), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ok, nil
}
