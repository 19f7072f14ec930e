package upstream

import "time"

type Config struct {
	// URL is the base URL of the web application.
	URL string `env:"UPSTREAM_URL,required"`
	// PreserveHost forwards the client Host header instead of the upstream one.
	PreserveHost bool `env:"UPSTREAM_PRESERVE_HOST" envDefault:"true"`
	// ResponseHeaderTimeout bounds the wait for upstream response headers.
	ResponseHeaderTimeout time.Duration `env:"UPSTREAM_RESPONSE_TIMEOUT" envDefault:"30s"`
	// DialTimeout bounds connection setup.
	DialTimeout time.Duration `env:"UPSTREAM_DIAL_TIMEOUT" envDefault:"5s"`
	// FlushInterval is passed to the reverse proxy; negative flushes after every write.
	FlushInterval time.Duration `env:"UPSTREAM_FLUSH_INTERVAL" envDefault:"0s"`
}
