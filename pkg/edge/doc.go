// Package edge runs tenant and locale resolution once per incoming request,
// before the request reaches the web application.
//
// A Pipeline composes four steps:
//
//  1. Scope decides whether the request is handled at all. API routes,
//     framework internals and static files pass through untouched.
//  2. The tenant host parser derives the tenant identifier from the Host.
//  3. The locale negotiator resolves the active locale, writes the locale
//     cookie and may redirect under the configured prefix policy.
//  4. The response annotator sets X-Tenant-ID when a tenant was derived.
//
// Requests that continue carry the tenant identifier in their context
// (tenant.IDFromContext) and in the X-Tenant-ID request header, and the
// locale in i18n.GetLocale and the X-Locale header.
//
// Basic usage:
//
//	p, err := edge.New(edge.DefaultConfig(), edge.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	r.Use(p.Middleware)
package edge
