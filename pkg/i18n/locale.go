package i18n

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLanguage is used when nothing else resolves a locale.
	DefaultLanguage = "en"

	// DefaultCookieName matches the cookie the web application reads.
	DefaultCookieName = "NEXT_LOCALE"

	// DefaultCookieMaxAge keeps the locale choice for a year.
	DefaultCookieMaxAge = 365 * 24 * time.Hour

	// LocaleHeader carries the resolved locale on forwarded requests.
	LocaleHeader = "X-Locale"
)

// DefaultLocales is the closed set of supported locales.
var DefaultLocales = []string{"en", "hi"}

// PrefixPolicy controls whether the resolved locale appears in URL paths.
type PrefixPolicy string

const (
	// PrefixNever keeps the locale out of the URL entirely.
	PrefixNever PrefixPolicy = "never"
	// PrefixAsNeeded prefixes every locale except the default one.
	PrefixAsNeeded PrefixPolicy = "as-needed"
	// PrefixAlways prefixes every path with its locale.
	PrefixAlways PrefixPolicy = "always"
)

func (p PrefixPolicy) valid() bool {
	switch p {
	case PrefixNever, PrefixAsNeeded, PrefixAlways:
		return true
	}
	return false
}

// UnmarshalText lets env-based configuration reject unknown policies.
func (p *PrefixPolicy) UnmarshalText(text []byte) error {
	v := PrefixPolicy(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPrefixPolicy, string(text))
	}
	*p = v
	return nil
}

// Config is the configuration surface of the locale negotiator.
type Config struct {
	Locales       []string      `env:"LOCALES" envDefault:"en,hi" envSeparator:","` // Locales is the supported locale set.
	DefaultLocale string        `env:"DEFAULT_LOCALE" envDefault:"en"`              // DefaultLocale is used when nothing else matches.
	Prefix        PrefixPolicy  `env:"LOCALE_PREFIX" envDefault:"never"`            // Prefix is the URL prefix policy.
	CookieName    string        `env:"LOCALE_COOKIE" envDefault:"NEXT_LOCALE"`      // CookieName stores the negotiated locale.
	CookieMaxAge  time.Duration `env:"LOCALE_COOKIE_MAX_AGE" envDefault:"8760h"`    // CookieMaxAge is the locale cookie lifetime.
}

// DefaultConfig returns the negotiator configuration used by the web app:
// {en, hi}, default en, never prefixed.
func DefaultConfig() Config {
	return Config{
		Locales:       append([]string(nil), DefaultLocales...),
		DefaultLocale: DefaultLanguage,
		Prefix:        PrefixNever,
		CookieName:    DefaultCookieName,
		CookieMaxAge:  DefaultCookieMaxAge,
	}
}
