package edge

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/tenant"
)

// Resolution describes what the pipeline derived for one request.
type Resolution struct {
	// Tenant is the host-derived tenant identifier, empty when none.
	Tenant string
	// Locale is the negotiated locale.
	Locale string
	// Redirect is set when the prefix policy sends the client elsewhere.
	Redirect string
	// Request is the request to hand downstream. Nil on redirect.
	Request *http.Request
}

// Event is reported to the Observer once per request, after the
// downstream handler returned.
type Event struct {
	InScope  bool
	Tenant   string
	Locale   string
	Redirect bool
	Policy   i18n.PrefixPolicy
	Duration time.Duration
}

// Observer receives one Event per request handled by the middleware.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for resolution records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers an observer, typically the metrics recorder.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// Pipeline performs tenant and locale resolution. It holds no per-request
// state and is safe for concurrent use.
type Pipeline struct {
	scope      *Scope
	hosts      *tenant.HostParser
	negotiator *i18n.Negotiator
	logger     *slog.Logger
	observer   Observer
}

// New builds a Pipeline from cfg. Negotiator configuration errors are
// returned as is.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	negotiator, err := i18n.NewNegotiator(cfg.Locale)
	if err != nil {
		return nil, err
	}

	prefixes := cfg.ExcludedPrefixes
	if prefixes == nil {
		prefixes = DefaultExcludedPrefixes
	}
	scope, err := NewScope(prefixes...)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		scope:      scope,
		hosts:      cfg.HostParser(),
		negotiator: negotiator,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Negotiator exposes the locale negotiator, e.g. to read the locale set.
func (p *Pipeline) Negotiator() *i18n.Negotiator { return p.negotiator }

// Scope exposes the route scope matcher.
func (p *Pipeline) Scope() *Scope { return p.scope }

// Resolve runs host parsing, locale negotiation and response annotation
// for r. Response headers are written to w; the body is left to the
// caller. Scope is not checked.
func (p *Pipeline) Resolve(w http.ResponseWriter, r *http.Request) Resolution {
	id := p.hosts.Parse(r.Host)
	out := p.negotiator.Negotiate(w, r)
	tenant.Annotate(w.Header(), id)

	res := Resolution{Tenant: id, Locale: out.Locale, Redirect: out.Redirect}
	if out.Request != nil {
		// out.Request is already a clone, so its header map is ours.
		req := out.Request.WithContext(tenant.WithID(out.Request.Context(), id))
		req.Header.Del(tenant.Header)
		tenant.Annotate(req.Header, id)
		res.Request = req
	}

	p.logger.DebugContext(r.Context(), "request resolved",
		slog.String("host", r.Host),
		slog.String("path", r.URL.Path),
		slog.String("tenant_id", id),
		slog.String("locale", out.Locale),
		slog.String("redirect", out.Redirect),
	)
	return res
}

// Middleware applies the pipeline to in-scope requests. Redirects are sent
// with 307 and still carry the tenant annotation.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if !p.scope.Includes(r.URL.Path) {
			next.ServeHTTP(w, r)
			p.observe(Event{Duration: time.Since(start)})
			return
		}

		res := p.Resolve(w, r)
		if res.Redirect != "" {
			http.Redirect(w, r, res.Redirect, http.StatusTemporaryRedirect)
		} else {
			next.ServeHTTP(w, res.Request)
		}

		p.observe(Event{
			InScope:  true,
			Tenant:   res.Tenant,
			Locale:   res.Locale,
			Redirect: res.Redirect != "",
			Policy:   p.negotiator.Prefix(),
			Duration: time.Since(start),
		})
	})
}

func (p *Pipeline) observe(e Event) {
	if p.observer != nil {
		p.observer.Observe(e)
	}
}
