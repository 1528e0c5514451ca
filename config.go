package podbean

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/wrale/podbean-go/tokenstore"
)

// Config holds client configuration loaded from environment variables.
type Config struct {
	ClientID          string        `envconfig:"PODBEAN_CLIENT_ID" required:"true"`
	ClientSecret      string        `envconfig:"PODBEAN_CLIENT_SECRET" required:"true"`
	BaseURL           string        `envconfig:"PODBEAN_BASE_URL" default:"https://api.podbean.com/v1"`
	RequestsPerMinute int           `envconfig:"PODBEAN_REQUESTS_PER_MINUTE" default:"60"`
	HTTPTimeout       time.Duration `envconfig:"PODBEAN_HTTP_TIMEOUT" default:"30s"`
	// RedisURL, when set, enables credential persistence in Redis.
	RedisURL string `envconfig:"PODBEAN_REDIS_URL"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// NewFromEnv creates a client from environment configuration.
func NewFromEnv() (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// NewFromConfig creates a client from an explicit Config.
func NewFromConfig(cfg Config) (*Client, error) {
	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithRequestsPerMinute(cfg.RequestsPerMinute),
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	}

	if cfg.RedisURL != "" {
		store, err := tokenstore.New(tokenstore.Config{
			Type:     tokenstore.StoreTypeRedis,
			Name:     cfg.ClientID,
			RedisURL: cfg.RedisURL,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTokenStore(store))
	}

	return New(cfg.ClientID, cfg.ClientSecret, opts...)
}
