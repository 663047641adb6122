package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"safety-watch/internal/domain/port"
)

// keyPrefix namespaces all persisted keys in Redis.
const keyPrefix = "safety-watch:"

// RedisRepository backs the key-value contract with Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to Redis and verifies the connection.
func NewRedisRepository(ctx context.Context, addr, password string, db int) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisRepository{client: client}, nil
}

// Load returns the stored value, or (nil, nil) when the key is absent.
func (r *RedisRepository) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Save stores the value without expiry.
func (r *RedisRepository) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

var _ port.StateRepository = (*RedisRepository)(nil)
