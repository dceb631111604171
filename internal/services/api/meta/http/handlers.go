// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"xferlock/internal/core/version"
	"xferlock/internal/modkit/httpkit"
	"xferlock/internal/platform/i18n"
)

// Guarder is satisfied by the store facade
type Guarder interface {
	Guard(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Cache       Guarder
	// RegistrarURL is reported when the registrar client is configured
	RegistrarURL string
	Catalog      *i18n.Catalog
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"xferlock-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"cache"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"cache ping failed"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"    example:"xferlock-api"`
	Started string   `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Locales []string `json:"locales" example:"en,es"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	cache := ReadyCheck{Name: "cache", Status: "skipped"}
	if h.deps.Cache != nil {
		cache.Status = "ok"
		if err := h.deps.Cache.Guard(ctx); err != nil {
			cache.Status, cache.Error = "fail", err.Error()
		}
	}
	reg := ReadyCheck{Name: "registrar", Status: "skipped"}
	if h.deps.RegistrarURL != "" {
		reg.Status = "ok"
	}

	overall := "ok"
	switch {
	case cache.Status == "fail":
		overall = "fail"
	case reg.Status != "ok":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{cache, reg},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	var locales []string
	if h.deps.Catalog != nil {
		locales = h.deps.Catalog.Locales()
	}
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Locales: locales,
	}, nil
}
