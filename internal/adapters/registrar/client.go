// Package registrar is the HTTP client for the registrar's transfer
// authorization endpoint. It never retries; callers decide when to ask again.
package registrar

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "xferlock"
	maxBodyBytes   = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration

	// HTTPClient overrides the transport, Timeout is ignored when set
	HTTPClient *http.Client
}

// Client calls the registrar REST API
type Client struct {
	http *http.Client
	opts Options
	base *url.URL
	log  logger.Logger
	now  func() time.Time
}

// NewClient validates the base URL and fills defaults
func NewClient(o Options) (*Client, error) {
	if strings.TrimSpace(o.BaseURL) == "" {
		return nil, perr.InvalidArgf("registrar: base url required")
	}
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, perr.InvalidArgf("registrar: invalid base url %q", o.BaseURL)
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http: hc,
		opts: o,
		base: base,
		log:  *logger.Named("registrar"),
		now:  time.Now,
	}, nil
}

// BaseURL returns the registrar endpoint the client talks to
func (c *Client) BaseURL() string { return c.base.String() }

// CheckAuthCode performs
// GET /domains/{domain}/inbound-transfer-check-auth-code?auth_code={code}
func (c *Client) CheckAuthCode(ctx context.Context, domain, authCode string) (AuthCodeCheck, error) {
	var out AuthCodeCheck

	u := *c.base
	u.Path = c.base.Path + "/domains/" + url.PathEscape(domain) + "/inbound-transfer-check-auth-code"
	u.RawQuery = url.Values{"auth_code": {authCode}}.Encode()

	resp, err := c.do(ctx, http.MethodGet, &u, domain)
	if err != nil {
		return out, err
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return AuthCodeCheck{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "registrar: undecodable response")
	}
	// a declined check still carries the domain's transfer status
	if !out.Success && out.Status == "" {
		return out, perr.WithOp(perr.Upstreamf("registrar: check for %s did not succeed", domain), "registrar.CheckAuthCode")
	}
	return out, nil
}

// do issues one request and maps transport and status failures onto project codes
func (c *Client) do(ctx context.Context, method string, u *url.URL, domain string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "registrar new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeCanceled, "registrar request canceled")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "registrar do failed")
	}

	// auth codes stay out of logs
	c.log.Debug().
		Str("method", method).
		Str("domain", domain).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("registrar http response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	se := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	return nil, perr.Wrapf(se, codeForStatus(resp.StatusCode), "registrar status %d", resp.StatusCode)
}

func codeForStatus(status int) perr.ErrorCode {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return perr.ErrorCodeUnauthorized
	case status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case status == http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case status >= 500:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUpstream
	}
}

// StatusError carries a non-2xx registrar response
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return http.StatusText(e.Status)
	}
	return http.StatusText(e.Status) + ": " + e.Body
}

// HTTPStatus returns the registrar's status code
func (e *StatusError) HTTPStatus() int { return e.Status }

// StatusOf extracts the registrar status code from err, 0 when absent
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
