// Package upstream forwards requests to the web application behind the
// edge. The incoming Host is preserved so the application sees the tenant
// subdomain, and the X-Tenant-ID and X-Locale headers set by the edge
// pipeline travel with the request. When the application cannot be
// reached the client gets a 502 with a message in its negotiated locale.
package upstream
