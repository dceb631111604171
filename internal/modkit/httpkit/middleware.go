package httpkit

import (
	"net/http"
	"time"

	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
	Catalog     *i18n.Catalog
}

// CommonStack returns the baseline middleware slice for the API
// order matters: request id before the logger context, recover before anything that writes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// localization before anything renders messages
		middleware.Locale(o.Catalog),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Heartbeat("/health"),
		middleware.Timeout(o.Timeout),
	}
}
