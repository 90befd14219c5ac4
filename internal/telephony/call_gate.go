package telephony

import (
	"context"
	"time"

	"studio-voice-backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// CallGate caps how many calls the dialogue engine serves at once. Each
// active call holds model and telephony spend, so the cap is a cost
// control, not a correctness requirement.
type CallGate interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// RedisCallGate counts active calls in Redis. The TTL bounds leakage when a
// status callback never arrives (crashed process, dropped webhook).
type RedisCallGate struct {
	rdb   *redis.Client
	key   string
	limit int
	ttl   time.Duration
}

func NewRedisCallGate(rdb *redis.Client, limit int, ttl time.Duration) *RedisCallGate {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisCallGate{rdb: rdb, key: "voice:active_calls", limit: limit, ttl: ttl}
}

func (g *RedisCallGate) Acquire(ctx context.Context) (bool, error) {
	return utils.AcquireConcurrencyCap(ctx, g.rdb, g.key, g.limit, g.ttl)
}

func (g *RedisCallGate) Release(ctx context.Context) error {
	return utils.ReleaseConcurrencyCap(ctx, g.rdb, g.key)
}
