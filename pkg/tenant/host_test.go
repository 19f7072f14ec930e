package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolerp/edge/pkg/tenant"
)

func TestHostParser_Parse(t *testing.T) {
	t.Parallel()

	p := tenant.NewHostParser(tenant.WithBaseDomains("schoolerp.com"))

	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "tenant subdomain", host: "school1.schoolerp.com", want: "school1"},
		{name: "tenant on localhost with port", host: "school1.localhost:3000", want: "school1"},
		{name: "www is reserved", host: "www.schoolerp.com", want: ""},
		{name: "localhost label is reserved", host: "localhost.schoolerp.com", want: ""},
		{name: "single label", host: "localhost", want: ""},
		{name: "single label with port", host: "localhost:3000", want: ""},
		{name: "apex domain", host: "schoolerp.com", want: ""},
		{name: "apex domain with port", host: "schoolerp.com:443", want: ""},
		{name: "apex domain upper case", host: "SchoolERP.com", want: ""},
		{name: "empty host", host: "", want: ""},
		{name: "leading dot", host: ".schoolerp.com", want: ""},
		{name: "no case normalization", host: "School1.schoolerp.com", want: "School1"},
		{name: "deep subdomain takes first label", host: "a.b.schoolerp.com", want: "a"},
		{name: "unknown two-label domain", host: "acme.example", want: "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.Parse(tt.host))
		})
	}
}

func TestHostParser_BaseDomainDefaults(t *testing.T) {
	t.Parallel()

	p := tenant.NewHostParser()
	assert.Equal(t, "", p.Parse("schoolerp.com"), "default apex is a bare domain")
	assert.Equal(t, "", p.Parse("schoolerp.com:443"))
	assert.Equal(t, "school1", p.Parse("school1.schoolerp.com"))

	p = tenant.NewHostParser(tenant.WithBaseDomains())
	assert.Equal(t, "schoolerp", p.Parse("schoolerp.com"), "two labels are enough without apex configuration")
	assert.Equal(t, "", p.Parse("www.schoolerp.com"))
}

func TestHostParser_WithReservedLabels(t *testing.T) {
	t.Parallel()

	p := tenant.NewHostParser(tenant.WithReservedLabels("app", "admin"))

	assert.Equal(t, "", p.Parse("app.schoolerp.com"))
	assert.Equal(t, "", p.Parse("admin.schoolerp.com"))
	assert.Equal(t, "www", p.Parse("www.schoolerp.com"), "replacing reserved labels drops the defaults")
}

func TestParseHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "school1", tenant.ParseHost("school1.schoolerp.com"))
	assert.Equal(t, "", tenant.ParseHost("www.schoolerp.com"))
	assert.Equal(t, "", tenant.ParseHost("localhost"))
	assert.Equal(t, "", tenant.ParseHost("schoolerp.com"))
	assert.Equal(t, "school1", tenant.ParseHost("school1.localhost:3000"))
}

func TestHostParser_Idempotent(t *testing.T) {
	t.Parallel()

	p := tenant.NewHostParser(tenant.WithBaseDomains("schoolerp.com"))
	for _, host := range []string{"school1.schoolerp.com", "www.schoolerp.com", "localhost"} {
		assert.Equal(t, p.Parse(host), p.Parse(host), host)
	}
}
