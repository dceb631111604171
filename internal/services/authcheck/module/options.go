package module

import (
	"time"

	"xferlock/internal/platform/config"
	dom "xferlock/internal/services/authcheck/domain"
)

// Options controls the checker cache
type Options struct {
	CacheTTL  time.Duration
	Namespace string

	// Remote overrides the registrar adapter, used by tests and the CLI
	Remote dom.RemotePort
}

// FromConfig reads XFER_CHECK_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("XFER_CHECK_")
	return Options{
		CacheTTL:  c.MayDuration("CACHE_TTL", 5*time.Minute),
		Namespace: c.MayString("CACHE_NAMESPACE", "xferlock:authcheck"),
	}
}
