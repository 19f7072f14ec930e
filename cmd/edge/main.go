// Command edge resolves the tenant and locale of every request to the
// school web application and proxies it upstream.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/schoolerp/edge/internal/api"
	"github.com/schoolerp/edge/internal/db"
	"github.com/schoolerp/edge/pkg/config"
	"github.com/schoolerp/edge/pkg/edge"
	"github.com/schoolerp/edge/pkg/environment"
	"github.com/schoolerp/edge/pkg/httpserver"
	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/logger"
	"github.com/schoolerp/edge/pkg/metrics"
	"github.com/schoolerp/edge/pkg/pg"
	"github.com/schoolerp/edge/pkg/redis"
	"github.com/schoolerp/edge/pkg/requestid"
	"github.com/schoolerp/edge/pkg/tenant"
	"github.com/schoolerp/edge/pkg/upstream"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("edge stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		tenant.LoggerExtractor(),
		i18n.LoggerExtractor(),
		environment.LoggerExtractor(),
	))...)
	slog.SetDefault(log)

	recorder, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	pipeline, err := edge.New(cfg.Edge, edge.WithLogger(log), edge.WithObserver(recorder))
	if err != nil {
		return err
	}
	catalog, err := i18n.DefaultCatalog(pipeline.Negotiator().DefaultLocale())
	if err != nil {
		return err
	}
	proxy, err := upstream.New(cfg.Upstream, upstream.WithLogger(log), upstream.WithCatalog(catalog))
	if err != nil {
		return err
	}

	var checks []httpserver.Check
	apiOpts := []api.Option{api.WithLogger(log), api.WithHostParser(cfg.Edge.HostParser())}

	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

		if cfg.PG.AutoMigrate {
			if err := pg.Migrate(ctx, pool, db.Migrations(), cfg.PG, log); err != nil {
				return err
			}
		}

		cache, check, closeCache, err := newTenantCache(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeCache()
		if check != nil {
			checks = append(checks, *check)
		}

		directory := tenant.NewDirectory(db.NewTenantStore(pool),
			tenant.WithCache(cache),
			tenant.WithCacheTTL(cfg.TenantCache.TTL),
			tenant.WithLogger(log),
		)
		apiOpts = append(apiOpts, api.WithDirectory(directory))
		log.InfoContext(ctx, "tenant directory enabled", slog.String("cache", cfg.TenantCache.Driver))
	} else {
		log.InfoContext(ctx, "tenant directory disabled, PG_CONN_URL not set")
	}

	deps := routerDeps{
		env:      cfg.Log.Env,
		log:      log,
		pipeline: pipeline,
		api:      api.NewHandler(pipeline.Negotiator(), catalog, apiOpts...),
		upstream: proxy,
		gatherer: prometheus.DefaultGatherer,
		checks:   checks,
	}

	log.InfoContext(ctx, "edge configured",
		slog.String("upstream", proxy.Target().String()),
		slog.Any("locales", pipeline.Negotiator().Locales()),
		slog.String("locale_prefix", string(pipeline.Negotiator().Prefix())),
	)

	adminHTTP := cfg.HTTP
	adminHTTP.Addr = cfg.Admin.Addr

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(gctx, newRouter(deps))
	})
	g.Go(func() error {
		srvLog := log.With(logger.Component("admin"))
		return httpserver.NewFromConfig(adminHTTP, httpserver.WithLogger(srvLog)).Run(gctx, newAdminRouter(deps))
	})
	return g.Wait()
}

func newTenantCache(ctx context.Context, cfg appConfig) (tenant.Cache, *httpserver.Check, func(), error) {
	noop := func() {}
	switch cfg.TenantCache.Driver {
	case cacheMemory, "":
		return tenant.NewMemoryCache(cfg.TenantCache.Size), nil, noop, nil
	case cacheNone:
		return tenant.NoOpCache{}, nil, noop, nil
	case cacheRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		check := &httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}
		return tenant.NewRedisCache(client, cfg.TenantCache.KeyPrefix), check, func() { _ = client.Close() }, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown TENANT_CACHE_DRIVER %q: want %s, %s or %s",
			cfg.TenantCache.Driver, cacheMemory, cacheRedis, cacheNone)
	}
}
