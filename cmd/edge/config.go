package main

import (
	"time"

	"github.com/schoolerp/edge/pkg/edge"
	"github.com/schoolerp/edge/pkg/httpserver"
	"github.com/schoolerp/edge/pkg/logger"
	"github.com/schoolerp/edge/pkg/pg"
	"github.com/schoolerp/edge/pkg/redis"
	"github.com/schoolerp/edge/pkg/upstream"
)

// Tenant cache drivers.
const (
	cacheMemory = "memory"
	cacheRedis  = "redis"
	cacheNone   = "none"
)

type tenantCacheConfig struct {
	Driver    string        `env:"TENANT_CACHE_DRIVER" envDefault:"memory"`  // Driver is memory, redis or none.
	TTL       time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`         // TTL of cached tenant profiles.
	Size      int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`      // Size bounds the memory cache.
	KeyPrefix string        `env:"TENANT_CACHE_PREFIX" envDefault:"tenant:"` // KeyPrefix namespaces redis keys.
}

// adminConfig is the internal listener for health checks and metrics. It must
// not be reachable through the public load balancer.
type adminConfig struct {
	Addr string `env:"ADMIN_ADDR" envDefault:":9090"`
}

type appConfig struct {
	Log         logger.Config
	HTTP        httpserver.Config
	Admin       adminConfig
	Edge        edge.Config
	Upstream    upstream.Config
	PG          pg.Config
	Redis       redis.Config
	TenantCache tenantCacheConfig
}
