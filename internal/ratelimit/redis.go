package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// admitScript checks the counter against the ceiling before incrementing, so
// a rejected request leaves the stored count untouched. The TTL is set when
// the bucket's counter is first created.
var admitScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= limit then
	return {current, 0}
end
current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return {current, 1}
`)

// RedisStore is a CounterStore backed by Redis. Atomicity across concurrent
// requests comes from the server-side script.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit"}
}

func (s *RedisStore) IncrementAndCheck(ctx context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error) {
	vals, err := admitScript.Run(ctx, s.client, []string{s.prefix + ":" + key}, limit, ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, false, errors.Join(ErrStoreUnavailable, err)
	}
	if len(vals) != 2 {
		return 0, false, errors.Join(ErrStoreUnavailable, fmt.Errorf("unexpected script reply: %v", vals))
	}
	return vals[0], vals[1] == 1, nil
}

// Ping reports counter store connectivity for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
