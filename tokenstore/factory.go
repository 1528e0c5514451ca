package tokenstore

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StoreType represents the type of store backend.
type StoreType string

const (
	// StoreTypeMemory keeps the record in process memory.
	StoreTypeMemory StoreType = "memory"
	// StoreTypeRedis persists the record in Redis.
	StoreTypeRedis StoreType = "redis"
)

// Config selects and configures a store backend.
type Config struct {
	// Type specifies the store type (memory or redis).
	Type StoreType
	// Name scopes the record's key; typically the OAuth client ID.
	// Required for the redis backend.
	Name string
	// RedisURL is a redis:// connection URL. Required for the redis backend.
	RedisURL string
}

// New creates a store from configuration.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	case StoreTypeRedis:
		if cfg.Name == "" {
			return nil, fmt.Errorf("redis token store requires a name")
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		return NewRedisStore(redis.NewClient(opts), cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported token store type: %s", cfg.Type)
	}
}
