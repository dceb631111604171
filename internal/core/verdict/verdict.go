// Package verdict composes the validation verdict for one domain transfer entry.
//
// Compose is pure: it reads only its Input and the injected collaborators, so
// the same input always yields the same Verdict. Rules are checked in order
// and the first match wins.
//
//  1. duplicate entry
//  2. debounced domain fails the syntax check
//  3. auth code blank
//  4. remote check in flight, or raw input not yet settled
//  5. remote result says the auth code is valid
//  6. remote result invalid and the availability notice has a message
//  7. fallback, with a refetch handle
package verdict

import (
	"strings"

	"xferlock/internal/core/availability"
	"xferlock/internal/core/domainname"
	"xferlock/internal/platform/i18n"
)

// Reason is a stable machine readable tag for the branch that produced a verdict
type Reason string

const (
	ReasonDuplicate       Reason = "duplicate"
	ReasonInvalidDomain   Reason = "invalid_domain"
	ReasonMissingAuthCode Reason = "missing_auth_code"
	ReasonChecking        Reason = "checking"
	ReasonUnlocked        Reason = "unlocked"
	ReasonUnavailable     Reason = "unavailable"
	ReasonUnknownError    Reason = "unknown_error"
)

// Verdict is the composed output
type Verdict struct {
	Valid   bool   `json:"valid"`
	Loading bool   `json:"loading"`
	Message string `json:"message"`
	Reason  Reason `json:"reason"`

	// Refetch is set only on the fallback branch
	Refetch func() `json:"-"`
	// Err is the remote failure behind a fallback verdict, if any
	Err error `json:"-"`
}

// CanRefetch reports whether the caller can retry the remote check
func (v Verdict) CanRefetch() bool { return v.Refetch != nil }

// Equal compares the data fields, ignoring the refetch handle and error
func (v Verdict) Equal(o Verdict) bool {
	return v.Valid == o.Valid && v.Loading == o.Loading && v.Message == o.Message && v.Reason == o.Reason
}

// Remote is the registrar's answer for the debounced pair
type Remote struct {
	Status        availability.Status
	AuthCodeValid bool
}

// Input is everything one evaluation looks at
type Input struct {
	Domain   string
	AuthCode string

	DebouncedDomain   string
	DebouncedAuthCode string

	HasDuplicates bool
	Fetching      bool

	Remote  *Remote
	Err     error
	Refetch func()

	// Site names the site the domain is already attached to, when known
	Site string
}

// Settled returns an input whose debounced fields equal the raw ones
func Settled(domain, authCode string, hasDuplicates bool) Input {
	return Input{
		Domain:            domain,
		AuthCode:          authCode,
		DebouncedDomain:   domain,
		DebouncedAuthCode: authCode,
		HasDuplicates:     hasDuplicates,
	}
}

// Debouncing reports whether raw input differs from its debounced projection
func (in Input) Debouncing() bool {
	return in.Domain != in.DebouncedDomain || in.AuthCode != in.DebouncedAuthCode
}

// NoticeResolver renders an availability notice
type NoticeResolver interface {
	Notice(domain string, status availability.Status, site string, forTransfer bool) availability.Notice
}

// Composer holds the collaborators Compose consults
type Composer struct {
	tr      i18n.Translator
	notices NoticeResolver
	syntax  domainname.Checker
}

// Option configures a Composer
type Option func(*Composer)

// WithNoticeResolver overrides the availability notice source
func WithNoticeResolver(r NoticeResolver) Option {
	return func(c *Composer) {
		if r != nil {
			c.notices = r
		}
	}
}

// WithChecker overrides the domain syntax checker
func WithChecker(ch domainname.Checker) Option {
	return func(c *Composer) {
		if ch != nil {
			c.syntax = ch
		}
	}
}

// New returns a Composer rendering messages through tr; nil tr echoes keys
func New(tr i18n.Translator, opts ...Option) *Composer {
	if tr == nil {
		tr = i18n.Identity
	}
	c := &Composer{
		tr:      tr,
		notices: availability.NewResolver(tr),
		syntax:  domainname.Syntax,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compose evaluates in against the ordered rules
func (c *Composer) Compose(in Input) Verdict {
	if in.HasDuplicates {
		return c.invalid(i18n.MsgDuplicate, ReasonDuplicate)
	}

	if !c.syntax.ResemblesDomain(in.DebouncedDomain) {
		return c.invalid(i18n.MsgInvalidDomain, ReasonInvalidDomain)
	}

	if strings.TrimSpace(in.AuthCode) == "" {
		return c.invalid(i18n.MsgMissingAuthCode, ReasonMissingAuthCode)
	}

	if in.Fetching || in.Debouncing() {
		return Verdict{Loading: true, Message: c.tr.T(i18n.MsgChecking), Reason: ReasonChecking}
	}

	if in.Remote != nil && in.Remote.AuthCodeValid {
		return Verdict{Valid: true, Message: c.tr.T(i18n.MsgUnlocked), Reason: ReasonUnlocked}
	}

	if in.Remote != nil {
		if n := c.notices.Notice(in.Domain, in.Remote.Status, in.Site, true); n.HasMessage() {
			return Verdict{Message: n.Message, Reason: ReasonUnavailable}
		}
	}

	return Verdict{
		Message: c.tr.T(i18n.MsgUnknownError),
		Reason:  ReasonUnknownError,
		Refetch: refetchOrNoop(in.Refetch),
		Err:     in.Err,
	}
}

func (c *Composer) invalid(key string, reason Reason) Verdict {
	return Verdict{Message: c.tr.T(key), Reason: reason}
}

func refetchOrNoop(fn func()) func() {
	if fn != nil {
		return fn
	}
	return func() {}
}
