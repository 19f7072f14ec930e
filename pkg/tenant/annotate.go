package tenant

import "net/http"

// Header carries the resolved tenant identifier on responses and on
// requests forwarded to downstream services.
const Header = "X-Tenant-ID"

// Annotate sets the tenant header when id is non-empty and leaves h
// untouched otherwise.
func Annotate(h http.Header, id string) {
	if id == "" {
		return
	}
	h.Set(Header, id)
}
