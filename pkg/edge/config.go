package edge

import (
	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/tenant"
)

// DefaultBaseDomain is the apex domain of the hosted web application.
const DefaultBaseDomain = tenant.DefaultBaseDomain

// Config holds the pipeline configuration.
type Config struct {
	BaseDomains      []string `env:"TENANT_BASE_DOMAINS" envDefault:"schoolerp.com" envSeparator:","`
	ReservedLabels   []string `env:"TENANT_RESERVED_LABELS" envDefault:"www,localhost" envSeparator:","`
	ExcludedPrefixes []string `env:"EDGE_EXCLUDED_PREFIXES" envDefault:"/api,/_next,/_vercel,/_static" envSeparator:","`
	Locale           i18n.Config
}

// DefaultConfig mirrors the envDefault tags of Config.
func DefaultConfig() Config {
	return Config{
		BaseDomains:      []string{DefaultBaseDomain},
		ReservedLabels:   append([]string(nil), tenant.DefaultReservedLabels...),
		ExcludedPrefixes: append([]string(nil), DefaultExcludedPrefixes...),
		Locale:           i18n.DefaultConfig(),
	}
}

// HostParser builds the tenant host parser described by c.
func (c Config) HostParser() *tenant.HostParser {
	opts := []tenant.HostOption{tenant.WithBaseDomains(c.BaseDomains...)}
	if len(c.ReservedLabels) > 0 {
		opts = append(opts, tenant.WithReservedLabels(c.ReservedLabels...))
	}
	return tenant.NewHostParser(opts...)
}
