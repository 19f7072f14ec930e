// Package metrics exposes Prometheus collectors for the edge pipeline.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/schoolerp/edge/pkg/edge"
)

const namespace = "edge"

// Label values.
const (
	ScopeEdge   = "edge"
	ScopeBypass = "bypass"

	TenantResolved = "resolved"
	TenantNone     = "none"

	LocaleNone = "none"
)

// Recorder collects per-request pipeline metrics. It implements
// edge.Observer.
type Recorder struct {
	requests  *prometheus.CounterVec
	redirects *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New registers the edge collectors on reg, or on the default registerer
// when reg is nil. Registering twice on the same registry reuses the
// existing collectors.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Requests seen by the edge pipeline.",
	}, []string{"scope", "locale", "tenant"})

	redirects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locale_redirects_total",
		Help:      "Redirects issued by the locale prefix policy.",
	}, []string{"policy"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Request duration including the downstream handler.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"scope"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if redirects, err = register(reg, redirects); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Recorder{requests: requests, redirects: redirects, duration: duration}, nil
}

// Observe records one pipeline event.
func (r *Recorder) Observe(e edge.Event) {
	scope := ScopeBypass
	if e.InScope {
		scope = ScopeEdge
	}
	locale := e.Locale
	if locale == "" {
		locale = LocaleNone
	}
	resolved := TenantNone
	if e.Tenant != "" {
		resolved = TenantResolved
	}

	r.requests.WithLabelValues(scope, locale, resolved).Inc()
	if e.Redirect {
		r.redirects.WithLabelValues(string(e.Policy)).Inc()
	}
	r.duration.WithLabelValues(scope).Observe(e.Duration.Seconds())
}

// Handler serves the metrics gathered by g in the text exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// register adds c to reg, returning the already registered collector
// when an identical one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
