package tenant

import (
	"net"
	"slices"
	"strings"
)

// DefaultReservedLabels lists first host labels that never name a tenant.
var DefaultReservedLabels = []string{"www", "localhost"}

// DefaultBaseDomain is the apex domain of the hosted web application.
const DefaultBaseDomain = "schoolerp.com"

// HostParser derives a tenant identifier from a request host.
// It does not consult any tenant registry: requests are assumed to be
// scoped to a known tenant domain by DNS before they get here.
type HostParser struct {
	reserved    []string
	baseDomains []string
}

// HostOption configures a HostParser.
type HostOption func(*HostParser)

// WithReservedLabels replaces the reserved first labels.
// Matching is exact, the way labels are returned.
func WithReservedLabels(labels ...string) HostOption {
	return func(p *HostParser) {
		p.reserved = slices.Clone(labels)
	}
}

// WithBaseDomains replaces the apex domains (DefaultBaseDomain unless set).
// A host equal to one of them, ignoring port and case, carries no tenant.
// Calling it without domains turns the apex rule off.
func WithBaseDomains(domains ...string) HostOption {
	return func(p *HostParser) {
		p.baseDomains = nil
		for _, d := range domains {
			d = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
			if d != "" {
				p.baseDomains = append(p.baseDomains, d)
			}
		}
	}
}

// NewHostParser returns a parser that rejects DefaultReservedLabels and
// treats DefaultBaseDomain as a bare domain.
func NewHostParser(opts ...HostOption) *HostParser {
	p := &HostParser{
		reserved:    slices.Clone(DefaultReservedLabels),
		baseDomains: []string{DefaultBaseDomain},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the tenant identifier for host, or an empty string when
// the host names no tenant. It never fails.
//
//	school1.schoolerp.com  -> "school1"
//	school1.localhost:3000 -> "school1"
//	www.schoolerp.com      -> ""
//	schoolerp.com          -> ""
//	localhost              -> ""
func (p *HostParser) Parse(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return ""
	}
	if p.isBaseDomain(host) {
		return ""
	}

	first := labels[0]
	if slices.Contains(p.reserved, first) {
		return ""
	}
	return first
}

func (p *HostParser) isBaseDomain(host string) bool {
	if len(p.baseDomains) == 0 {
		return false
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return slices.Contains(p.baseDomains, host)
}

var defaultHostParser = NewHostParser()

// ParseHost applies the default HostParser rules to host.
func ParseHost(host string) string {
	return defaultHostParser.Parse(host)
}
