package i18n

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header handed to the tag parser.
const maxAcceptLanguageLength = 4096

// Outcome is the result of negotiating a single request.
type Outcome struct {
	// Locale is the resolved locale, always one of the supported set.
	Locale string
	// Redirect is a path (with query) the client must be sent to, or
	// empty when the request may proceed.
	Redirect string
	// Request carries the locale in its context and LocaleHeader.
	// Nil when Redirect is set.
	Request *http.Request
}

// Negotiator resolves the active locale of a request against a fixed set
// and applies it to the response as a cookie and Content-Language.
type Negotiator struct {
	locales       []string
	matchOrder    []string
	defaultLocale string
	prefix        PrefixPolicy
	cookieName    string
	cookieMaxAge  int
	matcher       language.Matcher
}

// NewNegotiator validates cfg and builds a Negotiator.
func NewNegotiator(cfg Config) (*Negotiator, error) {
	if len(cfg.Locales) == 0 {
		return nil, ErrNoLocales
	}

	locales := make([]string, 0, len(cfg.Locales))
	tags := make([]language.Tag, 0, len(cfg.Locales))
	for _, l := range cfg.Locales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || slices.Contains(locales, l) {
			continue
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, l, err)
		}
		locales = append(locales, l)
		tags = append(tags, tag)
	}
	if len(locales) == 0 {
		return nil, ErrNoLocales
	}

	def := strings.ToLower(strings.TrimSpace(cfg.DefaultLocale))
	if def == "" {
		def = locales[0]
	}
	idx := slices.Index(locales, def)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLocaleNotSupported, def)
	}
	// The matcher falls back to its first tag, so keep the default first.
	matchOrder := slices.Clone(locales)
	tags[0], tags[idx] = tags[idx], tags[0]
	matchOrder[0], matchOrder[idx] = matchOrder[idx], matchOrder[0]

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = PrefixNever
	}
	if !prefix.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefixPolicy, string(prefix))
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	maxAge := cfg.CookieMaxAge
	if maxAge <= 0 {
		maxAge = DefaultCookieMaxAge
	}

	return &Negotiator{
		locales:       locales,
		matchOrder:    matchOrder,
		defaultLocale: def,
		prefix:        prefix,
		cookieName:    cookieName,
		cookieMaxAge:  int(maxAge.Seconds()),
		matcher:       language.NewMatcher(tags),
	}, nil
}

// Locales returns the supported locale set.
func (n *Negotiator) Locales() []string { return slices.Clone(n.locales) }

// DefaultLocale returns the fallback locale.
func (n *Negotiator) DefaultLocale() string { return n.defaultLocale }

// Prefix returns the configured prefix policy.
func (n *Negotiator) Prefix() PrefixPolicy { return n.prefix }

// Negotiate resolves the locale for r in the order: path prefix, cookie,
// Accept-Language, default. Locale state is written to w's headers
// before returning, so callers may still add headers or redirect.
func (n *Negotiator) Negotiate(w http.ResponseWriter, r *http.Request) Outcome {
	path := r.URL.EscapedPath()
	pathLocale, rest := n.splitPrefix(path)
	locale := n.resolve(r, pathLocale)

	n.persist(w, r, locale)

	if target := n.redirectTarget(path, pathLocale, rest, locale); target != "" {
		target = localPath(target)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		return Outcome{Locale: locale, Redirect: target}
	}

	req := r.Clone(SetLocale(r.Context(), locale))
	req.Header.Set(LocaleHeader, locale)
	return Outcome{Locale: locale, Request: req}
}

// Resolve returns the locale Negotiate would pick for r without touching
// the response or the request.
func (n *Negotiator) Resolve(r *http.Request) string {
	pathLocale, _ := n.splitPrefix(r.URL.EscapedPath())
	return n.resolve(r, pathLocale)
}

func (n *Negotiator) resolve(r *http.Request, pathLocale string) string {
	if pathLocale != "" {
		return pathLocale
	}
	if l := n.fromCookie(r); l != "" {
		return l
	}
	if l := n.fromAcceptLanguage(r.Header.Get("Accept-Language")); l != "" {
		return l
	}
	return n.defaultLocale
}

func (n *Negotiator) redirectTarget(path, pathLocale, rest, locale string) string {
	switch n.prefix {
	case PrefixNever:
		if pathLocale != "" {
			return rest
		}
	case PrefixAsNeeded:
		if pathLocale == n.defaultLocale {
			return rest
		}
		if pathLocale == "" && locale != n.defaultLocale {
			return joinPrefix(locale, path)
		}
	case PrefixAlways:
		if pathLocale == "" {
			return joinPrefix(locale, path)
		}
	}
	return ""
}

// splitPrefix reports the supported locale in the first path segment and
// the path without it: "/hi/fees" -> ("hi", "/fees"), "/hi" -> ("hi", "/").
func (n *Negotiator) splitPrefix(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, rest, _ := strings.Cut(trimmed, "/")
	if segment == "" {
		return "", path
	}
	for _, l := range n.locales {
		if strings.EqualFold(segment, l) {
			return l, "/" + rest
		}
	}
	return "", path
}

func (n *Negotiator) fromCookie(r *http.Request) string {
	c, err := r.Cookie(n.cookieName)
	if err != nil {
		return ""
	}
	return n.supported(c.Value)
}

func (n *Negotiator) fromAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return ""
	}
	_, idx, conf := n.matcher.Match(desired...)
	if conf == language.No {
		return ""
	}
	return n.matchOrder[idx]
}

func (n *Negotiator) supported(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if slices.Contains(n.locales, value) {
		return value
	}
	return ""
}

func (n *Negotiator) persist(w http.ResponseWriter, r *http.Request, locale string) {
	h := w.Header()
	h.Set("Content-Language", locale)
	addVary(h, "Accept-Language")
	addVary(h, "Cookie")

	if c, err := r.Cookie(n.cookieName); err == nil && c.Value == locale {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     n.cookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   n.cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// localPath collapses leading slashes and backslashes, raw or
// percent-encoded, into a single "/" so a redirect target always stays on
// the requesting host: "//evil.com/x" -> "/evil.com/x".
func localPath(p string) string {
	for {
		switch {
		case strings.HasPrefix(p, "/"), strings.HasPrefix(p, `\`):
			p = p[1:]
		case len(p) >= 3 && (strings.EqualFold(p[:3], "%2F") || strings.EqualFold(p[:3], "%5C")):
			p = p[3:]
		default:
			return "/" + p
		}
	}
}

func joinPrefix(locale, path string) string {
	if path == "" || path == "/" {
		return "/" + locale
	}
	return "/" + locale + path
}

func addVary(h http.Header, value string) {
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), value) {
				return
			}
		}
	}
	h.Add("Vary", value)
}
