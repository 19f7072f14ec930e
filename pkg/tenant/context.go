package tenant

import (
	"context"
	"log/slog"
)

type (
	idContextKey     struct{}
	tenantContextKey struct{}
)

// WithID stores the host-derived tenant identifier in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idContextKey{}, id)
}

// IDFromContext returns the tenant identifier stored by WithID.
// The boolean is false when no identifier or an empty one was stored.
func IDFromContext(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(idContextKey{}).(string)
	return id, id != ""
}

func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, t)
}

func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey{}).(*Tenant)
	return t, ok && t != nil
}

// LoggerExtractor enriches log records with the tenant identifier.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
