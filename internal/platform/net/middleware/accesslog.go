// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"xferlock/internal/platform/logger"
	pnet "xferlock/internal/platform/net"

	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
}

// captureWriter records status and bytes written
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// AccessLogZerolog logs method, path, status, elapsed and bytes with the request scoped logger
// 5xx responses log at error, slow requests at warn
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			lvl := zerolog.InfoLevel
			switch {
			case cw.status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case opt.Slow > 0 && elapsed >= opt.Slow:
				lvl = zerolog.WarnLevel
			}
			evt := logger.C(r.Context()).WithLevel(lvl).
				Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes)
			if loc := pnet.Locale(r.Context()); loc != "" {
				evt = evt.Str("locale", loc)
			}
			evt.Msg("request done")
		})
	}
}
