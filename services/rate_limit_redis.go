package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// redisWindow is the shared variant of the sliding window: the timestamps
// live in a sorted set scored by unix milliseconds, and the prune+check+record
// step runs in a single server-side script so concurrent instances cannot
// both pass the boundary check.
type redisWindow struct {
	client *redis.Client
	prefix string

	maxRequests int
	window      time.Duration
}

// The inclusive ZREMRANGEBYSCORE upper bound drops scores <= now-window,
// which matches the strictly-greater-than definition of "still in window".
var checkAndRecordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= max then
	return 1
end
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return 0
`)

func newRedisWindow(client *redis.Client, prefix string, maxRequests int, window time.Duration) *redisWindow {
	return &redisWindow{
		client:      client,
		prefix:      prefix,
		maxRequests: maxRequests,
		window:      window,
	}
}

func (w *redisWindow) key(key string) string {
	return w.prefix + ":" + key
}

func (w *redisWindow) IsRateLimited(key string) bool {
	ctx := context.Background()
	now := time.Now().UnixMilli()

	limited, err := checkAndRecordScript.Run(ctx, w.client,
		[]string{w.key(key)},
		now, w.window.Milliseconds(), w.maxRequests, uuid.NewString(),
	).Int()
	if err != nil {
		// Never block users because the counter store is unreachable.
		log.WithError(err).Error("Redis rate limit check failed")
		return false
	}

	return limited == 1
}

func (w *redisWindow) RemainingRequests(key string) int {
	ctx := context.Background()
	windowStart := time.Now().UnixMilli() - w.window.Milliseconds()

	count, err := w.client.ZCount(ctx, w.key(key),
		"("+strconv.FormatInt(windowStart, 10), "+inf").Result()
	if err != nil {
		log.WithError(err).Error("Redis rate limit count failed")
		return w.maxRequests
	}

	if remaining := w.maxRequests - int(count); remaining > 0 {
		return remaining
	}
	return 0
}

// Cleanup is a no-op: PEXPIRE on each record keeps the keyspace bounded.
func (w *redisWindow) Cleanup() {}
