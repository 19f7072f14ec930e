package i18n

import "net/http"

// Middleware negotiates the locale of every request with n. Requests that
// need a different URL under the prefix policy are redirected with 307;
// all others continue with the locale stored in their context.
func Middleware(n *Negotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out := n.Negotiate(w, r)
			if out.Redirect != "" {
				http.Redirect(w, r, out.Redirect, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, out.Request)
		})
	}
}
