package tenant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolerp/edge/pkg/tenant"
)

func TestHostResolver(t *testing.T) {
	t.Parallel()

	resolve := tenant.NewHostResolver(tenant.NewHostParser(tenant.WithBaseDomains("schoolerp.com")))

	req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/dashboard", nil)
	id, err := resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "school1", id)

	req = httptest.NewRequest(http.MethodGet, "http://schoolerp.com/", nil)
	id, err = resolve(req)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestHostResolver_NilParser(t *testing.T) {
	t.Parallel()

	resolve := tenant.NewHostResolver(nil)
	for _, host := range []string{"www.schoolerp.com", "schoolerp.com", "localhost:3000"} {
		req := httptest.NewRequest(http.MethodGet, "http://"+host+"/", nil)
		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id, host)
	}

	req := httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/", nil)
	id, err := resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "school1", id)
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "missing header", value: "", want: ""},
		{name: "subdomain", value: "school1", want: "school1"},
		{name: "custom domain", value: "portal.greenvalley.edu", want: "portal.greenvalley.edu"},
		{name: "trimmed", value: "  school1 ", want: "school1"},
		{name: "invalid characters", value: "school1;drop", wantErr: true},
		{name: "too long", value: strings.Repeat("a", tenant.MaxIdentifierLength+1), wantErr: true},
	}

	resolve := tenant.NewHeaderResolver("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.value != "" {
				req.Header.Set(tenant.Header, tt.value)
			}

			id, err := resolve(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	failing := tenant.Resolver(func(*http.Request) (string, error) {
		return "", errors.New("boom")
	})
	empty := tenant.Resolver(func(*http.Request) (string, error) { return "", nil })
	found := tenant.Resolver(func(*http.Request) (string, error) { return "school1", nil })

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("returns first non-empty", func(t *testing.T) {
		t.Parallel()

		id, err := tenant.NewCompositeResolver(empty, failing, found)(req)
		require.NoError(t, err)
		assert.Equal(t, "school1", id)
	})

	t.Run("reports errors when nothing resolved", func(t *testing.T) {
		t.Parallel()

		id, err := tenant.NewCompositeResolver(empty, failing)(req)
		require.Error(t, err)
		assert.Empty(t, id)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("empty without resolvers", func(t *testing.T) {
		t.Parallel()

		id, err := tenant.NewCompositeResolver()(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("host then header", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewCompositeResolver(
			tenant.NewHostResolver(tenant.NewHostParser(tenant.WithBaseDomains("schoolerp.com"))),
			tenant.NewHeaderResolver(tenant.Header),
		)

		r := httptest.NewRequest(http.MethodGet, "http://schoolerp.com/api/tenant", nil)
		r.Header.Set(tenant.Header, "school2")
		id, err := resolve(r)
		require.NoError(t, err)
		assert.Equal(t, "school2", id)

		r = httptest.NewRequest(http.MethodGet, "http://school1.schoolerp.com/api/tenant", nil)
		r.Header.Set(tenant.Header, "school2")
		id, err = resolve(r)
		require.NoError(t, err)
		assert.Equal(t, "school1", id, "host wins over forwarded header")
	})
}
