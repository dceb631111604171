// Package remote adapts the registrar client to the authcheck RemotePort
package remote

import (
	"context"

	"xferlock/internal/adapters/registrar"
	"xferlock/internal/core/availability"
	dom "xferlock/internal/services/authcheck/domain"
)

// Registrar is the slice of the registrar client this adapter needs
type Registrar interface {
	CheckAuthCode(ctx context.Context, domain, authCode string) (registrar.AuthCodeCheck, error)
}

// Remote implements domain.RemotePort
type Remote struct {
	c Registrar
}

// New wraps a registrar client
func New(c Registrar) *Remote { return &Remote{c: c} }

// CheckAuthCode implements domain.RemotePort
func (r *Remote) CheckAuthCode(ctx context.Context, k dom.Key) (dom.Result, error) {
	out, err := r.c.CheckAuthCode(ctx, k.Domain, k.AuthCode)
	if err != nil {
		return dom.Result{}, err
	}
	return dom.Result{
		Status:        availability.ParseStatus(out.Status),
		AuthCodeValid: out.AuthCodeValid,
	}, nil
}
