package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"xferlock/internal/platform/i18n"
	pnet "xferlock/internal/platform/net"
	"xferlock/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func TestAccessLogZerolog_PassThroughStatusAndBody(t *testing.T) {
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "ok")
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.RecoverJSON)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header should be mirrored")
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "panic recovered" || body["request_id"] == "" {
		t.Fatalf("body = %v", body)
	}
}

func TestLocale_NegotiatesFromHeaderAndQuery(t *testing.T) {
	cases := []struct {
		header, query, want string
	}{
		{"", "", "en"},
		{"es-MX,es;q=0.9,en;q=0.5", "", "es"},
		{"fr-FR", "", "en"},
		{"en", "es", "es"},
	}
	for _, tc := range cases {
		var seen string
		h := middleware.Locale(i18n.Default())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = pnet.Locale(r.Context())
		}))
		target := "/"
		if tc.query != "" {
			target += "?lang=" + tc.query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if seen != tc.want || rr.Header().Get("Content-Language") != tc.want {
			t.Fatalf("header=%q query=%q: locale=%q content-language=%q want %q",
				tc.header, tc.query, seen, rr.Header().Get("Content-Language"), tc.want)
		}
	}
}

func TestLogContext_PassesThrough(t *testing.T) {
	called := false
	h := middleware.LogContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.SessionHeader, "sess-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if !called || rr.Code != http.StatusNoContent {
		t.Fatalf("called=%v status=%d", called, rr.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://app.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transfers/validate", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestHeartbeat(t *testing.T) {
	h := middleware.Heartbeat("/ping")(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat status = %d", rr.Code)
	}
}
