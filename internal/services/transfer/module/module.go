// Package module wires transfer validation into the API using modkit
package module

import (
	"context"
	"net/http"

	"xferlock/internal/core/verdict"
	modkit "xferlock/internal/modkit"
	"xferlock/internal/modkit/httpkit"

	thttp "xferlock/internal/services/transfer/http"
	"xferlock/internal/services/transfer/service"
)

// Module implements the transfers API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	exposed Exposed
	stop    context.CancelFunc
}

// New constructs the transfers module. It panics without an injected Checker port
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("transfers"),
		modkit.WithPrefix("/transfers"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Checker == nil {
		panic("transfers module requires a Checker port (from services/authcheck)")
	}

	cfg := FromConfig(deps.Cfg)
	sessCfg := service.Config{Delay: cfg.Debounce, Site: cfg.Site}
	validator := service.NewValidator(injected.Checker, cfg.BatchLimit, service.WithSite(cfg.Site))
	sessions := service.NewRegistry(func(c *verdict.Composer) *service.Session {
		return service.NewSession(injected.Checker, c, sessCfg)
	}, cfg.SessionIdle, cfg.MaxSessions)

	// janitor for sessions nobody polls anymore
	ctx, stop := context.WithCancel(context.Background())
	go func() { _ = sessions.Run(ctx, 0) }()

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		exposed:   Exposed{Validator: validator, Sessions: sessions},
		stop:      stop,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		thttp.Register(r, thttp.Deps{
			Validator: validator,
			Sessions:  sessions,
			Catalog:   deps.Messages(),
			MaxBatch:  cfg.MaxBatch,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
}

// Ports returns the validator and session registry
func (m *Module) Ports() any { return m.exposed }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Close stops the janitor and closes every live session
func (m *Module) Close() {
	m.stop()
	m.exposed.Sessions.Close()
}
