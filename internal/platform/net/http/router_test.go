package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type validateReq struct {
	Domain   string `json:"domain" validate:"required"`
	AuthCode string `json:"auth_code"`
}

func TestRouter_RoutesGroupsAndMiddleware(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	r := AdaptChi(mux)

	r.Route("/api/v1", func(api Router) {
		api.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Scope", "v1")
				next.ServeHTTP(w, req)
			})
		})
		api.Group(func(g Router) {
			GetJSON(g, "/ping", func(*stdhttp.Request) (any, error) { return "pong", nil })
			PostJSON(g, "/echo", func(_ *stdhttp.Request, in validateReq) (any, error) { return in, nil })
		})
	})

	srv := httptest.NewServer(r.Mux())
	defer srv.Close()

	resp, err := stdhttp.Get(srv.URL + "/api/v1/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != 200 || resp.Header.Get("X-Scope") != "v1" || !strings.Contains(string(body), `"data":"pong"`) {
		t.Fatalf("ping: %d %q %s", resp.StatusCode, resp.Header.Get("X-Scope"), body)
	}

	resp, err = stdhttp.Post(srv.URL+"/api/v1/echo", "application/json", strings.NewReader(`{"domain":"example.com","auth_code":"x"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"domain":"example.com"`) {
		t.Fatalf("echo: %d %s", resp.StatusCode, body)
	}

	resp, err = stdhttp.Post(srv.URL+"/api/v1/echo", "application/json", strings.NewReader(`{"auth_code":"x"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("validation failure status = %d, want 400", resp.StatusCode)
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	MountProfiler(AdaptChi(mux), "/debug", false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should not mount, got %d", rec.Code)
	}

	mux = chi.NewRouter()
	MountProfiler(AdaptChi(mux), "/debug", true)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status = %d", rec.Code)
	}
}
