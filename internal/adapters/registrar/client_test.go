package registrar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	perr "xferlock/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{BaseURL: srv.URL + "/rest/v1.1/", Token: "tok", UserAgent: "xferlock-test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, &hits
}

func TestCheckAuthCode_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1.1/domains/example.com/inbound-transfer-check-auth-code" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("auth_code"); got != "A&B=C 1" {
			t.Errorf("auth_code = %q", got)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		if r.Header.Get("User-Agent") != "xferlock-test" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"auth_code_valid":false,"status":"locked"}`))
	})

	got, err := c.CheckAuthCode(context.Background(), "example.com", "A&B=C 1")
	if err != nil {
		t.Fatalf("CheckAuthCode: %v", err)
	}
	if !got.Success || got.AuthCodeValid || got.Status != "locked" {
		t.Fatalf("got %+v", got)
	}
}

func TestCheckAuthCode_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		code   perr.ErrorCode
	}{
		{http.StatusUnauthorized, perr.ErrorCodeUnauthorized},
		{http.StatusForbidden, perr.ErrorCodeUnauthorized},
		{http.StatusNotFound, perr.ErrorCodeNotFound},
		{http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{http.StatusInternalServerError, perr.ErrorCodeUnavailable},
		{http.StatusBadGateway, perr.ErrorCodeUnavailable},
		{http.StatusTeapot, perr.ErrorCodeUpstream},
	}
	for _, tc := range cases {
		c, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", tc.status)
		})
		_, err := c.CheckAuthCode(context.Background(), "example.com", "x")
		if !perr.IsCode(err, tc.code) {
			t.Fatalf("status %d: err = %v, want %s", tc.status, err, tc.code)
		}
		if StatusOf(err) != tc.status {
			t.Fatalf("StatusOf = %d, want %d", StatusOf(err), tc.status)
		}
		if hits.Load() != 1 {
			t.Fatalf("status %d: %d requests, the client must not retry", tc.status, hits.Load())
		}
	}
}

func TestCheckAuthCode_DeclinedWithStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"auth_code_valid":false,"status":"locked"}`))
	})

	got, err := c.CheckAuthCode(context.Background(), "example.com", "x")
	if err != nil {
		t.Fatalf("declined check with a status should not fail: %v", err)
	}
	if got.Success || got.AuthCodeValid || got.Status != "locked" {
		t.Fatalf("got %+v", got)
	}
}

func TestCheckAuthCode_BadBodies(t *testing.T) {
	cases := map[string]string{
		"not json":    `<html>`,
		"not success": `{"success":false}`,
	}
	for name, body := range cases {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		if _, err := c.CheckAuthCode(context.Background(), "example.com", "x"); !perr.IsCode(err, perr.ErrorCodeUpstream) {
			t.Fatalf("%s: err = %v, want upstream", name, err)
		}
	}
}

func TestCheckAuthCode_Canceled(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.CheckAuthCode(ctx, "example.com", "x")
	if !perr.IsCode(err, perr.ErrorCodeCanceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
}

func TestCheckAuthCode_TransportError(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.CheckAuthCode(context.Background(), "example.com", "x")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestNewClient_Validates(t *testing.T) {
	for _, base := range []string{"", "  ", "not a url", "/relative"} {
		if _, err := NewClient(Options{BaseURL: base}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("base %q: err = %v", base, err)
		}
	}
}

func TestStatusError_Message(t *testing.T) {
	e := &StatusError{Status: 404, Body: "no such domain"}
	if !strings.Contains(e.Error(), "Not Found: no such domain") {
		t.Fatalf("Error() = %q", e.Error())
	}
	if (&StatusError{Status: 500}).Error() != "Internal Server Error" {
		t.Fatalf("empty body message wrong")
	}
}
