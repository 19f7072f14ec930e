package i18n

import "errors"

var (
	ErrNoLocales                 = errors.New("no supported locales configured")
	ErrInvalidLocale             = errors.New("invalid locale")
	ErrDefaultLocaleNotSupported = errors.New("default locale is not in the supported set")
	ErrInvalidPrefixPolicy       = errors.New("invalid locale prefix policy")

	ErrFailedToReadCatalog  = errors.New("failed to read message catalog")
	ErrFailedToParseCatalog = errors.New("failed to parse message catalog")
)
