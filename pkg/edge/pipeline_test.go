package edge_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolerp/edge/pkg/edge"
	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/tenant"
)

type captured struct {
	called   bool
	path     string
	tenantID string
	header   string
	locale   string
	xlocale  string
}

func captureHandler(c *captured) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.path = r.URL.Path
		c.tenantID, _ = tenant.IDFromContext(r.Context())
		c.header = r.Header.Get(tenant.Header)
		c.locale = i18n.GetLocale(r.Context())
		c.xlocale = r.Header.Get(i18n.LocaleHeader)
		w.WriteHeader(http.StatusOK)
	})
}

func newPipeline(t *testing.T, opts ...edge.Option) *edge.Pipeline {
	t.Helper()
	p, err := edge.New(edge.DefaultConfig(), opts...)
	require.NoError(t, err)
	return p
}

func serve(p *edge.Pipeline, h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	p.Middleware(h).ServeHTTP(rec, r)
	return rec
}

func TestPipeline_TenantFromHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		host   string
		tenant string
	}{
		{"single label", "localhost", ""},
		{"bare domain", "schoolerp.com", ""},
		{"bare domain with port", "schoolerp.com:443", ""},
		{"tenant subdomain", "school1.schoolerp.com", "school1"},
		{"www", "www.schoolerp.com", ""},
		{"local development", "school1.localhost:3000", "school1"},
		{"label case kept", "School1.schoolerp.com", "School1"},
	}

	p := newPipeline(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c captured
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Host = tt.host
			rec := serve(p, captureHandler(&c), req)

			require.True(t, c.called)
			assert.Equal(t, tt.tenant, c.tenantID)
			assert.Equal(t, tt.tenant, c.header)

			if tt.tenant == "" {
				_, ok := rec.Header()[tenant.Header]
				assert.False(t, ok, "X-Tenant-ID must be absent")
			} else {
				assert.Equal(t, tt.tenant, rec.Header().Get(tenant.Header))
			}
		})
	}
}

func TestPipeline_LocaleApplied(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	var c captured
	req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/fees", nil)
	req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.5")
	rec := serve(p, captureHandler(&c), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", c.locale)
	assert.Equal(t, "hi", c.xlocale)
	assert.Equal(t, "/fees", c.path)
	assert.Equal(t, "hi", rec.Header().Get("Content-Language"))
	assert.Equal(t, "school1", rec.Header().Get(tenant.Header))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, i18n.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "hi", cookies[0].Value)
}

func TestPipeline_SpoofedTenantHeaderReplaced(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("no tenant derived", func(t *testing.T) {
		t.Parallel()
		var c captured
		req := httptest.NewRequest(http.MethodGet, "http://schoolerp.com/", nil)
		req.Header.Set(tenant.Header, "evil")
		rec := serve(p, captureHandler(&c), req)

		assert.Empty(t, c.header)
		assert.Empty(t, rec.Header().Get(tenant.Header))
		assert.Equal(t, "evil", req.Header.Get(tenant.Header), "incoming request must not be mutated")
	})

	t.Run("tenant derived", func(t *testing.T) {
		t.Parallel()
		var c captured
		req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/", nil)
		req.Header.Set(tenant.Header, "evil")
		serve(p, captureHandler(&c), req)

		assert.Equal(t, "school1", c.header)
	})
}

func TestPipeline_PrefixedPathRedirects(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	var c captured
	req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/hi/fees?term=2", nil)
	rec := serve(p, captureHandler(&c), req)

	assert.False(t, c.called)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/fees?term=2", rec.Header().Get("Location"))
	assert.Equal(t, "school1", rec.Header().Get(tenant.Header), "redirects are annotated too")
	assert.Equal(t, "hi", rec.Header().Get("Content-Language"))
}

func TestPipeline_RedirectStaysOnHost(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	tests := []struct {
		target   string
		location string
	}{
		{"/hi//evil.com/login", "/evil.com/login"},
		{"/hi//evil.com/", "/evil.com/"},
		{`/hi/\evil.com/x`, "/evil.com/x"},
		{"/hi/a%2Fb", "/a%2Fb"},
		{"/hi/a%3Fb?x=1", "/a%3Fb?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			var c captured
			req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com"+tt.target, nil)
			rec := serve(p, captureHandler(&c), req)

			assert.False(t, c.called)
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			loc := rec.Header().Get("Location")
			assert.Equal(t, tt.location, loc)
			assert.False(t, strings.HasPrefix(loc, "//"))
		})
	}
}

func TestPipeline_NeverAddsLocaleSegment(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	paths := []string{"/", "/dashboard", "/students/42", "/hi", "/en/fees", "/hindi"}
	languages := []string{"", "hi", "en-GB", "fr", "hi-IN,en;q=0.1"}

	for _, path := range paths {
		for _, lang := range languages {
			var c captured
			req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com"+path, nil)
			if lang != "" {
				req.Header.Set("Accept-Language", lang)
			}
			rec := serve(p, captureHandler(&c), req)

			target := c.path
			if loc := rec.Header().Get("Location"); loc != "" {
				target = loc
			}
			segments := strings.Count(strings.TrimSuffix(target, "/"), "/")
			original := strings.Count(strings.TrimSuffix(path, "/"), "/")
			assert.LessOrEqual(t, segments, original, "path %q lang %q -> %q", path, lang, target)
			for _, l := range []string{"en", "hi"} {
				assert.False(t, strings.HasPrefix(target, "/"+l+"/") || target == "/"+l,
					"path %q lang %q -> %q carries a locale segment", path, lang, target)
			}
		}
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	h := captureHandler(&captured{})

	hosts := []string{"school1.schoolerp.com", "www.schoolerp.com", "school1.localhost:3000", "localhost"}
	for _, host := range hosts {
		first := httptest.NewRequest(http.MethodGet, "/", nil)
		first.Host = host
		second := httptest.NewRequest(http.MethodGet, "/", nil)
		second.Host = host

		a := serve(p, h, first)
		b := serve(p, h, second)
		assert.Equal(t, a.Header().Values(tenant.Header), b.Header().Values(tenant.Header), host)
	}
}

func TestPipeline_OutOfScopePassesThrough(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	for _, path := range []string{"/api/tenant", "/_next/static/app.js", "/_vercel/insights", "/_static/a", "/favicon.ico", "/hi/logo.svg"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			var c captured
			req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com"+path, nil)
			req.Header.Set(tenant.Header, "forwarded")
			rec := serve(p, captureHandler(&c), req)

			require.True(t, c.called)
			assert.Equal(t, path, c.path)
			assert.Equal(t, "forwarded", c.header)
			assert.Empty(t, c.tenantID)
			assert.Empty(t, c.xlocale)
			assert.Empty(t, rec.Header().Get(tenant.Header))
			assert.Empty(t, rec.Header().Get("Content-Language"))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestPipeline_Observer(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []edge.Event
	)
	p := newPipeline(t, edge.WithObserver(edge.ObserverFunc(func(e edge.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})))
	h := captureHandler(&captured{})

	serve(p, h, httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/fees", nil))
	serve(p, h, httptest.NewRequest(http.MethodGet, "http://schoolerp.com/hi/fees", nil))
	serve(p, h, httptest.NewRequest(http.MethodGet, "http://schoolerp.com/api/tenant", nil))

	require.Len(t, events, 3)

	assert.True(t, events[0].InScope)
	assert.Equal(t, "school1", events[0].Tenant)
	assert.Equal(t, "en", events[0].Locale)
	assert.False(t, events[0].Redirect)
	assert.Equal(t, i18n.PrefixNever, events[0].Policy)

	assert.True(t, events[1].InScope)
	assert.Empty(t, events[1].Tenant)
	assert.Equal(t, "hi", events[1].Locale)
	assert.True(t, events[1].Redirect)

	assert.False(t, events[2].InScope)
	assert.Empty(t, events[2].Locale)
}

func TestNew_PropagatesNegotiatorErrors(t *testing.T) {
	t.Parallel()

	cfg := edge.DefaultConfig()
	cfg.Locale.DefaultLocale = "fr"

	_, want := i18n.NewNegotiator(cfg.Locale)
	require.Error(t, want)

	p, err := edge.New(cfg)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, i18n.ErrDefaultLocaleNotSupported)
	assert.EqualError(t, err, want.Error())
}

func TestNew_InvalidExcludedPrefix(t *testing.T) {
	t.Parallel()

	cfg := edge.DefaultConfig()
	cfg.ExcludedPrefixes = []string{"api"}

	_, err := edge.New(cfg)
	assert.ErrorIs(t, err, edge.ErrInvalidExcludedPrefix)
}

func TestNew_CustomBaseDomain(t *testing.T) {
	t.Parallel()

	cfg := edge.DefaultConfig()
	cfg.BaseDomains = []string{"school.example.org"}
	p, err := edge.New(cfg)
	require.NoError(t, err)

	var c captured
	req := httptest.NewRequest(http.MethodGet, "http://school.example.org/", nil)
	serve(p, captureHandler(&c), req)
	assert.Empty(t, c.tenantID)

	req = httptest.NewRequest(http.MethodGet, "http://schoolerp.com/", nil)
	serve(p, captureHandler(&c), req)
	assert.Equal(t, "schoolerp", c.tenantID)
}
