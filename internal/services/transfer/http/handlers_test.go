package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"xferlock/internal/core/availability"
	"xferlock/internal/core/verdict"
	"xferlock/internal/platform/i18n"
	phttp "xferlock/internal/platform/net/http"
	"xferlock/internal/platform/net/middleware"
	acdom "xferlock/internal/services/authcheck/domain"
	thttp "xferlock/internal/services/transfer/http"
	"xferlock/internal/services/transfer/service"

	"github.com/go-chi/chi/v5"
)

type tableChecker map[string]acdom.Result

func (t tableChecker) Check(_ context.Context, k acdom.Key) (acdom.Result, error) {
	if r, ok := t[k.Domain]; ok {
		return r, nil
	}
	return acdom.Result{Status: availability.StatusLocked}, nil
}

func (t tableChecker) Refresh(ctx context.Context, k acdom.Key) (acdom.Result, error) {
	return t.Check(ctx, k)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ck := tableChecker{"good.com": {Status: availability.StatusTransferrable, AuthCodeValid: true}}
	sessions := service.NewRegistry(func(c *verdict.Composer) *service.Session {
		return service.NewSession(ck, c, service.Config{Delay: 10 * time.Millisecond})
	}, time.Minute, 10)
	t.Cleanup(sessions.Close)

	mux := chi.NewRouter()
	mux.Use(middleware.Locale(i18n.Default()))
	r := phttp.AdaptChi(mux)
	r.Route("/transfers", func(rr phttp.Router) {
		thttp.Register(rr, thttp.Deps{
			Validator: service.NewValidator(ck, 4),
			Sessions:  sessions,
			MaxBatch:  3,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, body string, hdr map[string]string) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp, env
}

func TestValidate(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		body, reason string
		valid        bool
	}{
		{`{"domain":"good.com","auth_code":"abc"}`, "unlocked", true},
		{`{"domain":"locked.com","auth_code":"abc"}`, "unavailable", false},
		{`{"domain":"good.com","auth_code":""}`, "missing_auth_code", false},
		{`{"domain":"good","auth_code":"abc"}`, "invalid_domain", false},
		{`{"domain":"good.com","auth_code":"abc","has_duplicates":true}`, "duplicate", false},
	}
	for _, tc := range cases {
		resp, env := call(t, http.MethodPost, srv.URL+"/transfers/validate", tc.body, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d (%s)", tc.body, resp.StatusCode, env.Error)
		}
		var out thttp.ValidateResponse
		_ = json.Unmarshal(env.Data, &out)
		if string(out.Result.Reason) != tc.reason || out.Result.Valid != tc.valid {
			t.Fatalf("%s: result = %+v", tc.body, out.Result)
		}
	}
}

func TestValidate_LocalizedMessage(t *testing.T) {
	srv := newServer(t)
	_, env := call(t, http.MethodPost, srv.URL+"/transfers/validate",
		`{"domain":"good.com","auth_code":"abc"}`, map[string]string{"Accept-Language": "es-ES"})
	var out thttp.ValidateResponse
	_ = json.Unmarshal(env.Data, &out)
	if out.Result.Message != i18n.Spanish[i18n.MsgUnlocked] {
		t.Fatalf("message = %q", out.Result.Message)
	}
}

func TestValidate_RejectsUnknownFields(t *testing.T) {
	srv := newServer(t)
	resp, _ := call(t, http.MethodPost, srv.URL+"/transfers/validate", `{"domain":"good.com","nope":1}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRefresh_RequiresRecognizableDomain(t *testing.T) {
	srv := newServer(t)

	resp, env := call(t, http.MethodPost, srv.URL+"/transfers/refresh", `{"domain":"good.com","auth_code":"abc"}`, nil)
	var out thttp.ValidateResponse
	_ = json.Unmarshal(env.Data, &out)
	if resp.StatusCode != http.StatusOK || out.Result.Reason != verdict.ReasonUnlocked {
		t.Fatalf("refresh: %d %+v", resp.StatusCode, out.Result)
	}

	resp, env = call(t, http.MethodPost, srv.URL+"/transfers/refresh", `{"domain":"good","auth_code":"abc"}`, nil)
	if resp.StatusCode != http.StatusBadRequest || env.Field != "domain" {
		t.Fatalf("bad domain: %d field=%q", resp.StatusCode, env.Field)
	}

	_, env = call(t, http.MethodPost, srv.URL+"/transfers/refresh", `{"domain":"good","auth_code":"abc"}`,
		map[string]string{"Accept-Language": "es"})
	if !strings.Contains(env.Error, "debe parecer un nombre de dominio") {
		t.Fatalf("error = %q, want the spanish message", env.Error)
	}
}

func TestValidateBatch(t *testing.T) {
	srv := newServer(t)
	body := `{"entries":[{"domain":"good.com","auth_code":"a"},{"domain":"GOOD.com","auth_code":"b"},{"domain":"locked.com","auth_code":"c"}]}`
	resp, env := call(t, http.MethodPost, srv.URL+"/transfers/validate-batch", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (%s)", resp.StatusCode, env.Error)
	}
	var out thttp.BatchResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 3 || out.Items[1].Result.Reason != verdict.ReasonDuplicate {
		t.Fatalf("items = %+v", out.Items)
	}
	if out.Summary.Valid != 1 || out.Summary.Invalid != 2 || out.Summary.AllValid {
		t.Fatalf("summary = %+v", out.Summary)
	}

	tooMany := `{"entries":[{"domain":"a.com"},{"domain":"b.com"},{"domain":"c.com"},{"domain":"d.com"}]}`
	resp, env = call(t, http.MethodPost, srv.URL+"/transfers/validate-batch", tooMany, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity || env.Field != "entries" {
		t.Fatalf("oversized batch: %d field=%q", resp.StatusCode, env.Field)
	}

	resp, _ = call(t, http.MethodPost, srv.URL+"/transfers/validate-batch", `{"entries":[]}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty batch status = %d, want 400", resp.StatusCode)
	}
}

func TestSessions(t *testing.T) {
	srv := newServer(t)

	resp, env := call(t, http.MethodPost, srv.URL+"/transfers/sessions", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created thttp.SessionResponse
	_ = json.Unmarshal(env.Data, &created)
	if created.ID == "" || resp.Header.Get(middleware.SessionHeader) != created.ID {
		t.Fatalf("session id missing: %+v header=%q", created, resp.Header.Get(middleware.SessionHeader))
	}
	base := srv.URL + "/transfers/sessions/" + created.ID

	resp, _ = call(t, http.MethodPut, base, `{"domain":"good.com","auth_code":"abc"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, env = call(t, http.MethodGet, base, "", nil)
		var cur thttp.SessionResponse
		_ = json.Unmarshal(env.Data, &cur)
		if cur.Result.Valid {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("session never settled: %+v", cur.Result)
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, _ = call(t, http.MethodPost, base+"/refetch", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refetch status = %d", resp.StatusCode)
	}

	resp, _ = call(t, http.MethodDelete, base, "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, _ = call(t, http.MethodGet, base, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
}
