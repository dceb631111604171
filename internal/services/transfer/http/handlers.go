// Package http provides the transfer validation endpoints
package http

import (
	"net/http"

	"xferlock/internal/core/verdict"
	"xferlock/internal/modkit/httpkit"
	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	pnet "xferlock/internal/platform/net"
	"xferlock/internal/platform/net/middleware"
	dom "xferlock/internal/services/transfer/domain"
	"xferlock/internal/services/transfer/service"
)

// Deps are the handler dependencies
type Deps struct {
	Validator *service.Validator
	Sessions  *service.Registry
	Catalog   *i18n.Catalog
	MaxBatch  int
}

type handlers struct {
	deps Deps
}

// Register mounts the transfer routes
func Register(r httpkit.Router, d Deps) {
	if d.Catalog == nil {
		d.Catalog = i18n.Default()
	}
	if d.MaxBatch <= 0 {
		d.MaxBatch = 100
	}
	h := &handlers{deps: d}

	httpkit.PostJSON(r, "/validate", h.validate)
	httpkit.PostJSON(r, "/refresh", h.refresh)
	httpkit.PostJSON(r, "/validate-batch", h.validateBatch)

	httpkit.Post(r, "/sessions", h.createSession)
	httpkit.Get(r, "/sessions/{id}", h.getSession)
	httpkit.PutJSON(r, "/sessions/{id}", h.updateSession)
	httpkit.Post(r, "/sessions/{id}/refetch", h.refetchSession)
	httpkit.Delete(r, "/sessions/{id}", h.deleteSession)
}

// ValidateRequest is one domain and auth code pair
type ValidateRequest struct {
	Domain        string `json:"domain"         validate:"max=512"  example:"example.com"`
	AuthCode      string `json:"auth_code"      validate:"max=256"  example:"A1b2-C3d4"`
	HasDuplicates bool   `json:"has_duplicates" example:"false"`
}

// RefreshRequest names a pair whose cached registrar answer should be dropped;
// the domain must be recognizable since nothing else reaches the registrar
type RefreshRequest struct {
	Domain   string `json:"domain"    validate:"required,max=512,domainish" example:"example.com"`
	AuthCode string `json:"auth_code" validate:"required,max=256"           example:"A1b2-C3d4"`
}

// ValidateResponse is the verdict for one pair
type ValidateResponse struct {
	Domain string     `json:"domain"`
	Result dom.Result `json:"result"`
}

// BatchRequest is a list of pairs from the bulk transfer form
type BatchRequest struct {
	Entries []dom.Entry `json:"entries" validate:"required,min=1"`
}

// BatchItem is one row of a batch response
type BatchItem struct {
	Index  int        `json:"index"`
	Entry  dom.Entry  `json:"entry"`
	Result dom.Result `json:"result"`
}

// BatchResponse holds per entry verdicts and their summary
type BatchResponse struct {
	Items   []BatchItem `json:"items"`
	Summary dom.Summary `json:"summary"`
}

// SessionResponse is the current state of a live session
type SessionResponse struct {
	ID     string     `json:"id"`
	Result dom.Result `json:"result"`
}

func (h *handlers) composer(r *http.Request) *verdict.Composer {
	return verdict.New(h.deps.Catalog.For(pnet.Locale(r.Context())))
}

// @Summary Validate one transfer entry
// @Tags Transfers
// @Accept json
// @Produce json
// @Param body body ValidateRequest true "entry"
// @Success 200 {object} ValidateResponse
// @Router /transfers/validate [post]
func (h *handlers) validate(r *http.Request, in ValidateRequest) (any, error) {
	return h.one(r, in, false), nil
}

// @Summary Validate one transfer entry, bypassing cached registrar answers
// @Tags Transfers
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "entry"
// @Success 200 {object} ValidateResponse
// @Router /transfers/refresh [post]
func (h *handlers) refresh(r *http.Request, in RefreshRequest) (any, error) {
	return h.one(r, ValidateRequest{Domain: in.Domain, AuthCode: in.AuthCode}, true), nil
}

func (h *handlers) one(r *http.Request, in ValidateRequest, bypass bool) ValidateResponse {
	e := dom.Entry{Domain: in.Domain, AuthCode: in.AuthCode}
	v := h.deps.Validator.Validate(r.Context(), h.composer(r), e, in.HasDuplicates, bypass)
	logVerdict(r, v)
	return ValidateResponse{Domain: in.Domain, Result: dom.ResultOf(v)}
}

// @Summary Validate a list of transfer entries
// @Tags Transfers
// @Accept json
// @Produce json
// @Param body body BatchRequest true "entries"
// @Success 200 {object} BatchResponse
// @Router /transfers/validate-batch [post]
func (h *handlers) validateBatch(r *http.Request, in BatchRequest) (any, error) {
	if len(in.Entries) > h.deps.MaxBatch {
		return nil, perr.WithField(perr.InvalidArgf("at most %d entries per batch", h.deps.MaxBatch), "entries")
	}
	vs := h.deps.Validator.ValidateBatch(r.Context(), h.composer(r), in.Entries)

	out := BatchResponse{Items: make([]BatchItem, len(vs))}
	evs := make([]dom.EntryVerdict, len(vs))
	for i, v := range vs {
		out.Items[i] = BatchItem{Index: i, Entry: in.Entries[i], Result: dom.ResultOf(v)}
		evs[i] = dom.EntryVerdict{Entry: in.Entries[i], Verdict: v}
	}
	out.Summary = service.Summarize(evs)
	return out, nil
}

// @Summary Open a live validation session
// @Tags Transfers
// @Success 200 {object} SessionResponse
// @Router /transfers/sessions [post]
func (h *handlers) createSession(r *http.Request) (any, error) {
	s, err := h.deps.Sessions.Create(h.composer(r))
	if err != nil {
		return nil, err
	}
	ctx := logger.WithSession(r.Context(), s.ID())
	logger.C(ctx).Debug().Msg("session opened")
	return sessionResponse(s), nil
}

// @Summary Current verdict of a session
// @Tags Transfers
// @Param id path string true "session id"
// @Success 200 {object} SessionResponse
// @Router /transfers/sessions/{id} [get]
func (h *handlers) getSession(r *http.Request) (any, error) {
	s, err := h.deps.Sessions.Get(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return sessionResponse(s), nil
}

// @Summary Push a raw edit into a session
// @Tags Transfers
// @Param id path string true "session id"
// @Param body body ValidateRequest true "raw input"
// @Success 200 {object} SessionResponse
// @Router /transfers/sessions/{id} [put]
func (h *handlers) updateSession(r *http.Request, in ValidateRequest) (any, error) {
	s, err := h.deps.Sessions.Get(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	s.Update(dom.Input{Domain: in.Domain, AuthCode: in.AuthCode, HasDuplicates: in.HasDuplicates})
	return sessionResponse(s), nil
}

// @Summary Retry the registrar check of a session
// @Tags Transfers
// @Param id path string true "session id"
// @Success 200 {object} SessionResponse
// @Router /transfers/sessions/{id}/refetch [post]
func (h *handlers) refetchSession(r *http.Request) (any, error) {
	s, err := h.deps.Sessions.Get(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	s.Refetch()
	return sessionResponse(s), nil
}

// @Summary Close a session
// @Tags Transfers
// @Param id path string true "session id"
// @Success 204
// @Router /transfers/sessions/{id} [delete]
func (h *handlers) deleteSession(r *http.Request) (any, error) {
	if err := h.deps.Sessions.Delete(httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func sessionResponse(s *service.Session) httpkit.Response {
	body := SessionResponse{ID: s.ID(), Result: dom.ResultOf(s.Verdict())}
	return httpkit.WithHeader(httpkit.OK(body), middleware.SessionHeader, s.ID())
}

func logVerdict(r *http.Request, v verdict.Verdict) {
	evt := logger.C(r.Context()).Debug().Str("reason", string(v.Reason)).Bool("valid", v.Valid)
	if v.Err != nil {
		evt = evt.AnErr("cause", v.Err)
	}
	evt.Msg("verdict")
}
