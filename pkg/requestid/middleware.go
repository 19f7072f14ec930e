package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the request id on requests and responses.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware assigns every request an id. A well-formed id supplied by the
// client or a load balancer is kept; anything else is replaced with a new
// UUID. The id is echoed in the response and set on the request header so
// it reaches the upstream application.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}

		w.Header().Set(Header, id)
		req := r.Clone(WithContext(r.Context(), id))
		req.Header.Set(Header, id)
		next.ServeHTTP(w, req)
	})
}

// Valid reports whether id may be propagated as is.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
