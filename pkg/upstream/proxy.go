package upstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/logger"
	"github.com/schoolerp/edge/pkg/tenant"
)

// UnavailableKey is the catalog key of the 502 message.
const UnavailableKey = "errors.upstream_unavailable"

const defaultKeepAlive = 30 * time.Second

// edgeHeaders are response headers the edge decides. When one is already
// set before proxying, the upstream copy is dropped instead of appended.
var edgeHeaders = []string{"Content-Language", tenant.Header}

type ownedHeadersKey struct{}

// Option configures a Proxy.
type Option func(*Proxy)

// WithLogger sets the logger used for upstream failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Proxy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCatalog sets the message catalog for error responses.
func WithCatalog(c *i18n.Catalog) Option {
	return func(p *Proxy) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithTransport replaces the transport built from Config.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		if rt != nil {
			p.transport = rt
		}
	}
}

// Proxy is an http.Handler forwarding to the upstream web application.
type Proxy struct {
	target    *url.URL
	rp        *httputil.ReverseProxy
	transport http.RoundTripper
	catalog   *i18n.Catalog
	logger    *slog.Logger
}

// New builds a Proxy for cfg.URL.
func New(cfg Config, opts ...Option) (*Proxy, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.URL)
	}

	p := &Proxy{
		target:    target,
		transport: newTransport(cfg),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.catalog == nil {
		if p.catalog, err = i18n.DefaultCatalog(i18n.DefaultLanguage); err != nil {
			return nil, err
		}
	}

	preserveHost := cfg.PreserveHost
	p.rp = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if preserveHost {
				pr.Out.Host = pr.In.Host
			}
		},
		Transport:      p.transport,
		FlushInterval:  cfg.FlushInterval,
		ModifyResponse: dropOwnedHeaders,
		ErrorHandler:   p.handleError,
		ErrorLog:       slog.NewLogLogger(p.logger.Handler(), slog.LevelError),
	}
	return p, nil
}

// Target returns the upstream base URL.
func (p *Proxy) Target() *url.URL {
	u := *p.target
	return &u
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var owned []string
	for _, h := range edgeHeaders {
		if w.Header().Get(h) != "" {
			owned = append(owned, h)
		}
	}
	if len(owned) > 0 {
		r = r.WithContext(context.WithValue(r.Context(), ownedHeadersKey{}, owned))
	}
	p.rp.ServeHTTP(w, r)
}

func dropOwnedHeaders(resp *http.Response) error {
	if resp.Request == nil {
		return nil
	}
	owned, _ := resp.Request.Context().Value(ownedHeadersKey{}).([]string)
	for _, h := range owned {
		resp.Header.Del(h)
	}
	return nil
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		p.logger.DebugContext(r.Context(), "client went away before upstream responded",
			slog.String("path", r.URL.Path))
		return
	}

	p.logger.ErrorContext(r.Context(), "upstream request failed",
		slog.String("upstream", p.target.Host),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Error(err),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = fmt.Fprintln(w, p.catalog.Tc(r.Context(), UnavailableKey))
}

func newTransport(cfg Config) http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ResponseHeaderTimeout > 0 {
		t.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}
	if cfg.DialTimeout > 0 {
		t.DialContext = (&net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: defaultKeepAlive}).DialContext
	}
	return t
}
