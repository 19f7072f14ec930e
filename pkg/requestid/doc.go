// Package requestid assigns a correlation id to every request that passes
// through the edge. The id is stored in the request context, echoed in the
// X-Request-ID response header and forwarded to the upstream application
// in the same request header. LoggerExtractor plugs it into pkg/logger.
package requestid
