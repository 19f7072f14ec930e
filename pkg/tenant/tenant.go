package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is the public profile of a school served by the platform.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Domain    string    `json:"domain,omitempty"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider loads tenant information from a data source.
type Provider interface {
	// GetByIdentifier retrieves a tenant by id, custom domain or subdomain.
	// Returns ErrTenantNotFound if nothing matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// ProviderFunc adapts an ordinary function to Provider.
type ProviderFunc func(ctx context.Context, identifier string) (*Tenant, error)

func (f ProviderFunc) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	return f(ctx, identifier)
}
