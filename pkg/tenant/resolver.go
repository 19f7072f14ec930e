package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// MaxIdentifierLength bounds identifiers read from client-controlled
// headers. 253 is the longest valid DNS name, so custom domains fit.
const MaxIdentifierLength = 253

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]*$`)

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string if no tenant found, error if extraction failed.
type Resolver func(r *http.Request) (string, error)

// ValidIdentifier reports whether id is safe to use as a lookup key.
func ValidIdentifier(id string) bool {
	if id == "" || len(id) > MaxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(id)
}

// NewHostResolver resolves the tenant from the request host using p.
// A nil parser falls back to the default rules.
func NewHostResolver(p *HostParser) Resolver {
	if p == nil {
		p = defaultHostParser
	}
	return func(r *http.Request) (string, error) {
		return p.Parse(r.Host), nil
	}
}

// NewHeaderResolver reads the tenant from a request header.
// Defaults to Header if headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = Header
	}

	return func(r *http.Request) (string, error) {
		value := strings.TrimSpace(r.Header.Get(headerName))
		if value == "" {
			return "", nil
		}
		if !ValidIdentifier(value) {
			return "", fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}

// NewCompositeResolver tries resolvers in order and returns the first
// non-empty result. Errors are collected and only reported when no
// resolver produced an identifier.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		var errs []error

		for _, resolve := range resolvers {
			id, err := resolve(r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if id != "" {
				return id, nil
			}
		}

		if len(errs) > 0 {
			return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
		}
		return "", nil
	}
}
