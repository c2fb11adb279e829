package cache

import (
	"context"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisCacheKey  = "batch_public_key"
	keyField       = "key"
	fetchedAtField = "fetchedAt"
)

// Redis is a KeyCache backed by Redis. Use it when several processes
// verify callbacks for the same API key, so a key fetched by one is
// visible to all.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis key cache.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "gommt:")
}

// NewRedis creates a new Redis key cache with the given configuration.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisFromClient creates a Redis key cache from an existing client.
func NewRedisFromClient(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = "gommt:"
	}
	return &Redis{client: client, keyPrefix: keyPrefix}
}

// Get retrieves the key and its fetch time from Redis.
func (r *Redis) Get(ctx context.Context) ([]byte, time.Time, bool, error) {
	vals, err := r.client.HGetAll(ctx, r.keyPrefix+redisCacheKey).Result()
	if err != nil {
		return nil, time.Time{}, false, err
	}
	if len(vals) == 0 {
		return nil, time.Time{}, false, nil
	}

	key, err := base64.StdEncoding.DecodeString(vals[keyField])
	if err != nil {
		return nil, time.Time{}, false, err
	}
	ts, err := strconv.ParseInt(vals[fetchedAtField], 10, 64)
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return key, time.Unix(ts, 0), true, nil
}

// Set stores the key and its fetch time in Redis.
func (r *Redis) Set(ctx context.Context, key []byte, fetchedAt time.Time) error {
	return r.client.HSet(ctx, r.keyPrefix+redisCacheKey,
		keyField, base64.StdEncoding.EncodeToString(key),
		fetchedAtField, fetchedAt.Unix(),
	).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Verify Redis implements KeyCache
var _ KeyCache = (*Redis)(nil)
