package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
	pnet "xferlock/internal/platform/net"
	phttp "xferlock/internal/platform/net/http"
)

// RecoverJSON converts panics into the standard JSON error envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			// format stack like chi recover
			lines := strings.Split(string(debug.Stack()), "\n")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", strings.Join(lines, "\n\t"))

			if reqID := pnet.RequestID(r.Context()); reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
