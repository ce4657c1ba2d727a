package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "challenge:"

// removeScript deletes the key only while it still holds the record the
// caller redeemed. A concurrent re-issue or a second redeemer sees 0.
var removeScript = redis.NewScript(`
local value = redis.call('GET', KEYS[1])
if not value then
    return 0
end
local rec = cjson.decode(value)
if rec.code_hash ~= ARGV[1] then
    return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// RedisStore shares challenges between processes. Redis expires keys on
// its own, so no sweep is needed.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func Key(identity string) string {
	return keyPrefix + identity
}

func (s *RedisStore) Put(ctx context.Context, rec Record, ttl time.Duration) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, Key(rec.Identity), value, ttl).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, identity string) (*Record, error) {
	value, err := s.client.Get(ctx, Key(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Remove(ctx context.Context, rec Record) (bool, error) {
	n, err := removeScript.Run(ctx, s.client, []string{Key(rec.Identity)}, rec.CodeHash).Int()
	if err != nil {
		return false, fmt.Errorf("remove challenge: %w", err)
	}
	return n == 1, nil
}
