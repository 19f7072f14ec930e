// Package db is the PostgreSQL side of the tenant directory.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/schoolerp/edge/pkg/pg"
	"github.com/schoolerp/edge/pkg/tenant"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Identifiers match the tenant id, its custom domain and its subdomain,
// in that priority order.
const resolveTenantQuery = `
SELECT id, subdomain, COALESCE(domain, ''), name, COALESCE(logo_url, ''), is_active, created_at
FROM tenants
WHERE id::text = LOWER($1)
   OR LOWER(COALESCE(domain, '')) = LOWER($1)
   OR LOWER(subdomain) = LOWER($1)
ORDER BY
  CASE
    WHEN id::text = LOWER($1) THEN 0
    WHEN LOWER(COALESCE(domain, '')) = LOWER($1) THEN 1
    ELSE 2
  END
LIMIT 1`

// TenantStore implements tenant.Provider on the tenants table. Inactive
// tenants are returned too; the directory decides how to treat them.
type TenantStore struct {
	db Querier
}

func NewTenantStore(db Querier) *TenantStore {
	return &TenantStore{db: db}
}

var _ tenant.Provider = (*TenantStore)(nil)

func (s *TenantStore) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrTenantNotFound
	}

	var t tenant.Tenant
	err := s.db.QueryRow(ctx, resolveTenantQuery, identifier).Scan(
		&t.ID,
		&t.Subdomain,
		&t.Domain,
		&t.Name,
		&t.LogoURL,
		&t.Active,
		&t.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(ErrQueryTenant, fmt.Errorf("identifier %q: %w", identifier, err))
	}
	return &t, nil
}
