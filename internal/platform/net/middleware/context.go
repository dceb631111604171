package middleware

import (
	"net/http"

	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	pnet "xferlock/internal/platform/net"
)

// SessionHeader carries a client chosen validation session id
const SessionHeader = "X-Session-ID"

// LogContext copies the request id and the optional session header onto the logger context
// so logger.C picks them up downstream, and mirrors the request id on the response.
// Mount after RequestID
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := pnet.RequestID(r.Context())
		if reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		ctx := logger.WithRequest(r.Context(), reqID)
		ctx = logger.WithSession(ctx, r.Header.Get(SessionHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Locale negotiates the message locale from ?lang= or Accept-Language against cat
// and stores it on the request context. A nil cat uses i18n.Default
func Locale(cat *i18n.Catalog) func(http.Handler) http.Handler {
	if cat == nil {
		cat = i18n.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tr i18n.Translator
			if q := r.URL.Query().Get("lang"); q != "" {
				tr = cat.For(q)
			} else {
				tr = cat.Match(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", tr.Locale())
			next.ServeHTTP(w, r.WithContext(pnet.WithLocale(r.Context(), tr.Locale())))
		})
	}
}
