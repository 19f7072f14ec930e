// Package i18n negotiates the active locale of a request and provides the
// small message catalog the edge uses for its own responses.
//
// # Negotiation
//
// A Negotiator is configured with a closed locale set, a default locale and
// a PrefixPolicy. For each request it resolves the locale in this order:
//
//  1. a supported locale in the first path segment ("/hi/fees"),
//  2. the locale cookie (NEXT_LOCALE by default),
//  3. the Accept-Language header, matched with golang.org/x/text/language,
//  4. the default locale.
//
// The result is written to the response as a cookie and Content-Language
// header and to the forwarded request as context value and X-Locale header.
// Under PrefixNever (the default) the locale never appears in the URL: a
// request that arrives with a locale prefix is redirected to the same path
// without it.
//
//	n, err := i18n.NewNegotiator(i18n.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	router.Use(i18n.Middleware(n))
//
// # Messages
//
// Catalog loads YAML documents keyed by locale and falls back to the
// default locale, then to the key:
//
//	cat, _ := i18n.DefaultCatalog("en")
//	cat.T("hi", "errors.tenant_not_found")
package i18n
