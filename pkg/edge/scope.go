package edge

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultExcludedPrefixes are routes served by the API and the web
// framework itself.
var DefaultExcludedPrefixes = []string{"/api", "/_next", "/_vercel", "/_static"}

// staticFilePattern matches paths whose last segment is "name.ext".
const staticFilePattern = `.*/[^/]+\.[^/]+`

// Scope decides which request paths the pipeline handles.
// Excluded prefixes match on segment boundaries: "/api" and "/api/x" are
// excluded, "/apiary" is not.
type Scope struct {
	exclude *regexp.Regexp
}

// NewScope compiles the exclusion pattern for prefixes and static files.
func NewScope(prefixes ...string) (*Scope, error) {
	alts := make([]string, 0, len(prefixes)+1)
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		segment := strings.Trim(p, "/")
		if !strings.HasPrefix(p, "/") || segment == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExcludedPrefix, p)
		}
		alts = append(alts, regexp.QuoteMeta("/"+segment)+`(?:/.*)?`)
	}
	alts = append(alts, staticFilePattern)

	re, err := regexp.Compile(`(?s)^(?:` + strings.Join(alts, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExcludedPrefix, err)
	}
	return &Scope{exclude: re}, nil
}

// Includes reports whether the pipeline applies to path.
func (s *Scope) Includes(path string) bool {
	if path == "" {
		path = "/"
	}
	return !s.exclude.MatchString(path)
}

// Pattern returns the compiled exclusion expression.
func (s *Scope) Pattern() string { return s.exclude.String() }
