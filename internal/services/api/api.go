// Package api provides the HTTP API for the application
package api

import (
	"time"

	"xferlock/internal/adapters/registrar"
	"xferlock/internal/platform/config"
	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	phttp "xferlock/internal/platform/net/http"
	"xferlock/internal/platform/store"

	"xferlock/internal/modkit"
	"xferlock/internal/modkit/httpkit"
	"xferlock/internal/modkit/module"
	"xferlock/internal/modkit/swaggerkit"

	metamod "xferlock/internal/services/api/meta/module"
	acdom "xferlock/internal/services/authcheck/domain"
	acmod "xferlock/internal/services/authcheck/module"
	transfermod "xferlock/internal/services/transfer/module"
)

// Options are the API options
type Options struct {
	Config    config.Conf
	Store     *store.Store
	Registrar *registrar.Client
	Catalog   *i18n.Catalog

	// Remote replaces the registrar client for checks, used by tests
	Remote acdom.RemotePort

	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Mount mounts the API service onto the given router and returns a func
// that closes live validation sessions
func Mount(r phttp.Router, opt Options) (closeFn func()) {
	deps := modkit.Deps{
		Log:       *logger.Named("api"),
		Cfg:       opt.Config,
		Store:     opt.Store,
		Registrar: opt.Registrar,
		Catalog:   opt.Catalog,
	}

	reg := module.NewRegistry()

	// checker first, transfers depends on its port
	checks := reg.MustAdd(acmod.New(deps, acmod.Options{Remote: opt.Remote}))
	checker := module.MustLookup[acdom.CheckerPort](reg, checks.Name())

	transfers := transfermod.New(
		deps,
		modkit.WithPorts(transfermod.Ports{Checker: checker}),
	)
	reg.MustAdd(transfers)
	reg.MustAdd(metamod.New(deps))

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.RequestTimeout,
		Catalog:     deps.Messages(),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		reg.Each(func(m module.Module) { m.MountRoutes(api) })
	})

	swaggerkit.Mount(r, opt.EnableSwagger, "xferlock API")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	deps.Log.Info().
		Strs("modules", reg.Names()).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Msg("api mounted")

	return transfers.Close
}
