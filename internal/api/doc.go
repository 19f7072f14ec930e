// Package api serves the edge's own JSON endpoints. They live next to
// the web application's /api routes, which are proxied untouched.
package api
