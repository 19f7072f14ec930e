package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var embeddedMessages embed.FS

// Catalog holds flat key -> message maps per locale. Nested YAML keys are
// joined with dots: errors.upstream_unavailable.
type Catalog struct {
	messages      map[string]map[string]string
	defaultLocale string
}

// DefaultCatalog loads the messages shipped with the binary.
func DefaultCatalog(defaultLocale string) (*Catalog, error) {
	return LoadCatalog(embeddedMessages, "messages/messages.yaml", defaultLocale)
}

// LoadCatalog reads a YAML document keyed by locale from fsys.
func LoadCatalog(fsys fs.FS, name, defaultLocale string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCatalog, err)
	}
	return ParseCatalog(data, defaultLocale)
}

// ParseCatalog builds a Catalog from YAML content.
func ParseCatalog(data []byte, defaultLocale string) (*Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseCatalog, err)
	}
	if len(raw) == 0 {
		return nil, errors.Join(ErrFailedToParseCatalog, errors.New("no locales found"))
	}

	c := &Catalog{
		messages:      make(map[string]map[string]string, len(raw)),
		defaultLocale: strings.ToLower(defaultLocale),
	}
	if c.defaultLocale == "" {
		c.defaultLocale = DefaultLanguage
	}

	for locale, v := range raw {
		tree, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: locale %q: expected map, got %T", ErrFailedToParseCatalog, locale, v)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[strings.ToLower(locale)] = flat
	}
	return c, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T returns the message for key in locale, falling back to the default
// locale and finally to the key itself. args are name/value pairs that
// replace %{name} placeholders.
func (c *Catalog) T(locale, key string, args ...string) string {
	msg, ok := c.messages[strings.ToLower(locale)][key]
	if !ok {
		msg, ok = c.messages[c.defaultLocale][key]
	}
	if !ok {
		return key
	}
	for i := 0; i+1 < len(args); i += 2 {
		msg = strings.ReplaceAll(msg, "%{"+args[i]+"}", args[i+1])
	}
	return msg
}

// Tc translates key using the locale stored in ctx.
func (c *Catalog) Tc(ctx context.Context, key string, args ...string) string {
	return c.T(GetLocale(ctx), key, args...)
}

// Has reports whether locale has its own message for key.
func (c *Catalog) Has(locale, key string) bool {
	_, ok := c.messages[strings.ToLower(locale)][key]
	return ok
}
