// Package module wires the auth code checker and exposes its port
package module

import (
	"xferlock/internal/modkit"
	"xferlock/internal/modkit/httpkit"
	dom "xferlock/internal/services/authcheck/domain"
	"xferlock/internal/services/authcheck/remote"
	"xferlock/internal/services/authcheck/service"
)

// Module defines the authcheck module; it has no routes of its own
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the checker from config, applying non-zero overrides.
// It panics when neither deps.Registrar nor overrides.Remote is set.
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.CacheTTL != 0 {
		opts.CacheTTL = overrides.CacheTTL
	}
	if overrides.Namespace != "" {
		opts.Namespace = overrides.Namespace
	}

	var rp dom.RemotePort
	switch {
	case overrides.Remote != nil:
		rp = overrides.Remote
	case deps.Registrar != nil:
		rp = remote.New(deps.Registrar)
	default:
		panic("authcheck module requires a registrar client or a Remote override")
	}

	svc := service.New(rp, deps.Cache(), service.Config{
		TTL:       opts.CacheTTL,
		Namespace: opts.Namespace,
	})
	return &Module{deps: deps, ports: Ports{Checker: svc}}
}

// Ports returns the module ports (Checker)
func (m *Module) Ports() any { return m.ports }

// Checker is a typed shortcut for Ports().Checker
func (m *Module) Checker() dom.CheckerPort { return m.ports.Checker }

// Name returns the module name
func (m *Module) Name() string { return "authcheck" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
