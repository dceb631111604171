package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"xferlock/internal/platform/i18n"
	phttp "xferlock/internal/platform/net/http"
	"xferlock/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

type portsA struct{ Name string }

func TestBuild_DefaultsAndOptions(t *testing.T) {
	b := Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatalf("default hooks should be set")
	}

	var registered bool
	mw := func(next http.Handler) http.Handler { return next }
	b = Build(
		WithName("transfers"),
		WithPrefix("/transfers"),
		WithMiddlewares(mw, mw),
		WithPorts(portsA{Name: "x"}),
		WithRegister(func(phttp.Router) { registered = true }),
	)
	if b.Name != "transfers" || b.Prefix != "/transfers" || len(b.Mw) != 2 {
		t.Fatalf("built = %+v", b)
	}
	if p, ok := b.Ports.(portsA); !ok || p.Name != "x" {
		t.Fatalf("ports = %#v", b.Ports)
	}
	b.Register(nil)
	if !registered {
		t.Fatalf("register hook not kept")
	}
}

type routeModule struct{ path string }

func (m routeModule) MountRoutes(r phttp.Router) {
	r.Get(m.path, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
}
func (m routeModule) Ports() any   { return nil }
func (m routeModule) Name() string { return m.path }

func TestMountAll_SkipsNil(t *testing.T) {
	mux := chi.NewRouter()
	MountAll(phttp.AdaptChi(mux), routeModule{path: "/a"}, nil, routeModule{path: "/b"})

	for _, p := range []string{"/a", "/b"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("%s status = %d", p, rec.Code)
		}
	}
}

func TestDeps_Fallbacks(t *testing.T) {
	var d Deps
	if d.Cache() != nil {
		t.Fatalf("nil store should give nil cache")
	}
	if d.Messages() != i18n.Default() {
		t.Fatalf("nil catalog should fall back to default")
	}

	mem := store.NewMemory()
	d.Store = &store.Store{Cache: mem}
	if d.Cache() != mem {
		t.Fatalf("cache not taken from store")
	}
}
