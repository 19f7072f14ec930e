package tenant

import (
	"log/slog"
	"time"
)

// DefaultCacheTTL is how long the Directory keeps a loaded tenant.
const DefaultCacheTTL = 5 * time.Minute

type config struct {
	cache         Cache
	cacheTTL      time.Duration
	requireActive bool
	logger        *slog.Logger
}

// Option configures a Directory.
type Option func(*config)

func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithRequireActive controls whether inactive tenants are rejected.
// Enabled by default.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
