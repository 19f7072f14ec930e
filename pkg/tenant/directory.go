package tenant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Directory looks tenants up through a Provider with a read-through cache.
// It is independent of the request pipeline: the tenant header is derived
// from the host alone, the directory only serves full tenant profiles.
type Directory struct {
	provider Provider
	cfg      *config
}

// NewDirectory creates a Directory backed by provider.
// Without WithCache an in-memory cache is used.
func NewDirectory(provider Provider, opts ...Option) *Directory {
	cfg := &config{
		cacheTTL:      DefaultCacheTTL,
		requireActive: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cache == nil {
		cfg.cache = NewMemoryCache(DefaultCacheSize)
	}
	return &Directory{provider: provider, cfg: cfg}
}

// Lookup returns the tenant matching identifier.
func (d *Directory) Lookup(ctx context.Context, identifier string) (*Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if !ValidIdentifier(identifier) {
		return nil, ErrInvalidIdentifier
	}
	key := strings.ToLower(identifier)

	if cached, ok := d.cfg.cache.Get(ctx, key); ok {
		if d.cfg.requireActive && !cached.Active {
			return nil, ErrInactiveTenant
		}
		return cached, nil
	}

	t, err := d.provider.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		return nil, errors.Join(errors.New("tenant lookup failed"), err)
	}
	if t == nil {
		return nil, ErrTenantNotFound
	}

	if d.cfg.requireActive && !t.Active {
		return nil, ErrInactiveTenant
	}

	if err := d.cfg.cache.Set(ctx, key, t, d.cfg.cacheTTL); err != nil {
		d.cfg.logger.WarnContext(ctx, "failed to cache tenant",
			slog.String("identifier", identifier),
			slog.Any("error", err),
		)
	}
	return t, nil
}

// Invalidate drops identifier from the cache.
func (d *Directory) Invalidate(ctx context.Context, identifier string) error {
	return d.cfg.cache.Delete(ctx, strings.ToLower(strings.TrimSpace(identifier)))
}
