package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces credential records in Redis.
const DefaultKeyPrefix = "podbean:token:"

// RedisStore implements Store using Redis, keyed per client so multiple
// applications can share one Redis instance.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. The name (typically the OAuth
// client ID) scopes the record's key.
func NewRedisStore(client *redis.Client, name string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    DefaultKeyPrefix + name,
	}
}

// Save stores the record. No TTL is applied: the refresh token has no
// published expiry and must outlive the access token.
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling token record: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("saving token record: %w", err)
	}
	return nil
}

// Load retrieves the stored record, or (nil, nil) when none exists.
func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting token record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling token record: %w", err)
	}
	return &rec, nil
}

// Delete removes the stored record.
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("deleting token record: %w", err)
	}
	return nil
}

// CheckHealth verifies Redis connectivity.
func (s *RedisStore) CheckHealth(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
