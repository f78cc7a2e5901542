package session

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists session history in Redis with a sliding TTL: every
// append rewrites the key and restarts its expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis at the given URL and verifies the
// connection before returning.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return "session:" + sessionID
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	data, err := r.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	var turns []Turn
	if err := sonic.Unmarshal([]byte(data), &turns); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	return turns, nil
}

func (r *RedisStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	existing, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	data, err := sonic.Marshal(capTurns(append(existing, turns...)))
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving session %s: %w", sessionID, err)
	}
	return nil
}

func (r *RedisStore) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
