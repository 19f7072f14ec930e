package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/schoolerp/edge/internal/api"
	"github.com/schoolerp/edge/pkg/edge"
	"github.com/schoolerp/edge/pkg/environment"
	"github.com/schoolerp/edge/pkg/httpserver"
	"github.com/schoolerp/edge/pkg/metrics"
	"github.com/schoolerp/edge/pkg/requestid"
)

type routerDeps struct {
	env      environment.Environment
	log      *slog.Logger
	pipeline *edge.Pipeline
	api      *api.Handler
	upstream http.Handler
	gatherer prometheus.Gatherer
	checks   []httpserver.Check
}

// newRouter wires the public endpoints and sends every other request
// through the pipeline to the web application.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		environment.Middleware(d.env),
		middleware.Recoverer,
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	d.api.Register(r)

	r.With(d.pipeline.Middleware).Handle("/*", d.upstream)
	return r
}

// newAdminRouter serves health checks and metrics on the internal listener only.
func newAdminRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(d.log, d.checks...))
	r.Handle("/metrics", metrics.Handler(d.gatherer))
	return r
}
