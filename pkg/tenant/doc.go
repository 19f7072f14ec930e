// Package tenant derives the tenant (school) of an incoming request from its
// host and exposes the helpers the rest of the edge needs around it.
//
// # Host parsing
//
// HostParser splits the host on "." and takes the first label as the tenant
// identifier. Hosts with fewer than two labels, configured apex domains and
// reserved first labels ("www", "localhost") carry no tenant:
//
//	p := tenant.NewHostParser(tenant.WithBaseDomains("schoolerp.com"))
//	p.Parse("school1.schoolerp.com")  // "school1"
//	p.Parse("school1.localhost:3000") // "school1"
//	p.Parse("www.schoolerp.com")      // ""
//	p.Parse("schoolerp.com")          // ""
//
// Parsing never fails; absence of a tenant is a normal outcome.
//
// # Response annotation
//
// Annotate sets the X-Tenant-ID header only when an identifier was derived,
// so the header is present on a response if and only if the host named a
// tenant.
//
// # Directory
//
// Directory loads full tenant profiles through a Provider with a
// read-through Cache (MemoryCache or RedisCache). Resolvers (host, header,
// composite) turn a request into the identifier to look up.
package tenant
