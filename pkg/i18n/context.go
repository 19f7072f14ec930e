package i18n

import (
	"context"
	"log/slog"
)

type localeContextKey struct{}

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from the context, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// LoggerExtractor adds the negotiated locale to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if locale, ok := ctx.Value(localeContextKey{}).(string); ok && locale != "" {
			return slog.String("locale", locale), true
		}
		return slog.Attr{}, false
	}
}
