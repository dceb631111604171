package module

import (
	"time"

	"xferlock/internal/platform/config"
)

// Options controls transfer validation behavior
type Options struct {
	Debounce    time.Duration // quiet period for live sessions
	Site        string        // site the domains are attached to, for notices
	BatchLimit  int           // concurrent registrar checks per batch
	MaxBatch    int           // entries accepted per batch request
	SessionIdle time.Duration // idle sessions are evicted after this
	MaxSessions int
}

// FromConfig reads XFER_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("XFER_")
	return Options{
		Debounce:    c.MayDuration("DEBOUNCE", 500*time.Millisecond),
		Site:        c.MayString("SITE", ""),
		BatchLimit:  c.MayInt("BATCH_CONCURRENCY", 8),
		MaxBatch:    c.MayInt("BATCH_MAX", 100),
		SessionIdle: c.MayDuration("SESSION_IDLE", 15*time.Minute),
		MaxSessions: c.MayInt("SESSION_MAX", 1000),
	}
}
