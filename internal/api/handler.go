package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolerp/edge/pkg/environment"
	"github.com/schoolerp/edge/pkg/i18n"
	"github.com/schoolerp/edge/pkg/logger"
	"github.com/schoolerp/edge/pkg/tenant"
)

// Handler serves the tenant profile endpoint.
type Handler struct {
	resolve    tenant.Resolver
	directory  *tenant.Directory
	negotiator *i18n.Negotiator
	catalog    *i18n.Catalog
	logger     *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithDirectory enables profile lookups. Without it the endpoint only
// reports the resolved identifier.
func WithDirectory(d *tenant.Directory) Option {
	return func(h *Handler) { h.directory = d }
}

// WithHostParser resolves identifiers from the host with p before falling
// back to the X-Tenant-ID header.
func WithHostParser(p *tenant.HostParser) Option {
	return func(h *Handler) {
		h.resolve = defaultResolver(p)
	}
}

// WithResolver replaces the default host-then-header resolver.
func WithResolver(r tenant.Resolver) Option {
	return func(h *Handler) {
		if r != nil {
			h.resolve = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler builds the API handler. n picks the locale of error messages,
// since /api is outside the pipeline scope and carries no negotiated locale.
func NewHandler(n *i18n.Negotiator, catalog *i18n.Catalog, opts ...Option) *Handler {
	h := &Handler{
		resolve:    defaultResolver(nil),
		negotiator: n,
		catalog:    catalog,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func defaultResolver(p *tenant.HostParser) tenant.Resolver {
	return tenant.NewCompositeResolver(
		tenant.NewHostResolver(p),
		tenant.NewHeaderResolver(tenant.Header),
	)
}

// TenantPath is the tenant profile endpoint.
const TenantPath = "/api/tenant"

// Register adds the endpoints to r. Only exact paths are claimed so the
// rest of /api keeps reaching the web application.
func (h *Handler) Register(r chi.Router) {
	r.Get(TenantPath, h.getTenant)
}

type tenantResponse struct {
	Identifier string         `json:"identifier"`
	Tenant     *tenant.Tenant `json:"tenant,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (h *Handler) getTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolve(r)
	if err != nil {
		h.writeError(w, r, id, err)
		return
	}
	if id == "" {
		h.writeError(w, r, id, tenant.ErrTenantNotFound)
		return
	}

	resp := tenantResponse{Identifier: id}
	if h.directory != nil {
		t, err := h.directory.Lookup(r.Context(), id)
		if err != nil {
			h.writeError(w, r, id, err)
			return
		}
		resp.Tenant = t
	}

	w.Header().Add("Vary", "Host")
	w.Header().Add("Vary", tenant.Header)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	var (
		status int
		code   string
		args   []string
	)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		status, code = http.StatusNotFound, "tenant_not_found"
	case errors.Is(err, tenant.ErrInactiveTenant):
		status, code = http.StatusForbidden, "tenant_inactive"
	case errors.Is(err, tenant.ErrInvalidIdentifier):
		status, code = http.StatusBadRequest, "tenant_invalid"
		raw := r.Header.Get(tenant.Header)
		if len(raw) > tenant.MaxIdentifierLength {
			raw = raw[:tenant.MaxIdentifierLength]
		}
		args = []string{"identifier", raw}
	default:
		status, code = http.StatusInternalServerError, "internal"
		h.logger.ErrorContext(r.Context(), "tenant lookup failed", logger.TenantID(id), logger.Error(err))
	}

	locale := i18n.DefaultLanguage
	if h.negotiator != nil {
		locale = h.negotiator.Resolve(r)
	}

	detail := errorDetail{Code: code, Message: h.catalog.T(locale, "errors."+code, args...)}
	if !environment.IsProduction(r.Context()) {
		detail.Detail = err.Error()
	}

	w.Header().Set("Content-Language", locale)
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
