package tenant

import "errors"

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")
	ErrInactiveTenant    = errors.New("tenant is inactive")
	ErrNoTenantInContext = errors.New("no tenant in context")
)
