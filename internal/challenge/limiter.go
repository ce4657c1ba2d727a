package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter caps how often a challenge may be issued per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, resetAt time.Time)
}

// issueLimitScript is a sliding window over a sorted set of issue times.
var issueLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)

if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local resetAt = now + window
    if #oldest >= 2 then
        resetAt = tonumber(oldest[2]) + window
    end
    return {0, resetAt}
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return {1, now + window}
`)

type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window, now: time.Now}
}

// Allow denies when Redis cannot answer, so an outage cannot be used to
// flood the admin inbox.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Time) {
	now := l.now().Unix()
	fullKey := fmt.Sprintf("ratelimit:challenge:%s", key)

	result, err := issueLimitScript.Run(
		ctx,
		l.client,
		[]string{fullKey},
		now,
		int64(l.window.Seconds()),
		l.limit,
	).Int64Slice()

	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("challenge rate limit check failed, denying request")
		return false, l.now().Add(l.window)
	}
	if len(result) != 2 {
		log.Warn().Str("key", key).Msg("unexpected challenge rate limit result, denying request")
		return false, l.now().Add(l.window)
	}

	return result[0] == 1, time.Unix(result[1], 0)
}

// MemoryLimiter is the single-process sliding window.
type MemoryLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, at := range l.hits[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false, recent[0].Add(l.window)
	}

	l.hits[key] = append(recent, now)
	return true, now.Add(l.window)
}
