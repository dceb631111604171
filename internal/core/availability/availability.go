// Package availability turns a registrar transfer-eligibility status into a
// user facing notice
package availability

import (
	"strings"

	"xferlock/internal/platform/i18n"
)

// Status is the registrar's classification of a domain's transfer eligibility
type Status string

// Known statuses, as the registrar spells them on the wire
const (
	StatusUnknown                  Status = ""
	StatusAvailable                Status = "available"
	StatusTransferrable            Status = "transferrable"
	StatusLocked                   Status = "locked"
	StatusTransferPending          Status = "transfer_pending"
	StatusTransferPendingSameUser  Status = "transfer_pending_same_user"
	StatusRecentRegistrationLock   Status = "recent_registration_lock_not_transferrable"
	StatusServerTransferProhibited Status = "server_transfer_prohibited_not_transferrable"
	StatusMapped                   Status = "mapped"
	StatusMappedSameSite           Status = "mapped_same_site_transferrable"
	StatusRegisteredSameSite       Status = "registered_same_site"
	StatusRegisteredOtherSite      Status = "registered_other_site_same_user"
	StatusTLDNotSupported          Status = "tld_not_supported"
	StatusTLDNotSupportedTemporary Status = "tld_not_supported_temporarily"
	StatusInvalidTLD               Status = "invalid_tld"
	StatusNotRegistrable           Status = "not_registrable"
	StatusForbidden                Status = "forbidden"
	StatusInRedemption             Status = "in_redemption"
	StatusMaintenance              Status = "maintenance"
	StatusPurchasesDisabled        Status = "purchases_disabled"
	StatusDotBlogSubdomain         Status = "dotblog_subdomain"
	StatusUnknownActive            Status = "unknown_active"
)

// ParseStatus normalizes a wire status; unrecognized values are kept verbatim
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Severity ranks a notice for presentation
type Severity string

const (
	SeverityNone    Severity = ""
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is the rendered result; an empty Message means nothing to show
type Notice struct {
	Message  string   `json:"message,omitempty"`
	Severity Severity `json:"severity,omitempty"`
}

// HasMessage reports whether the notice carries text
func (n Notice) HasMessage() bool { return n.Message != "" }

// Resolver renders notices in one locale
type Resolver struct {
	tr i18n.Translator
}

// NewResolver returns a Resolver; a nil translator echoes message keys
func NewResolver(tr i18n.Translator) *Resolver {
	if tr == nil {
		tr = i18n.Identity
	}
	return &Resolver{tr: tr}
}

type rule struct {
	key      string
	severity Severity
}

var rules = map[Status]rule{
	StatusLocked:                   {i18n.NoticeLocked, SeverityError},
	StatusTransferPending:          {i18n.NoticeTransferPending, SeverityWarning},
	StatusTransferPendingSameUser:  {i18n.NoticeTransferPendingSameUser, SeverityInfo},
	StatusRecentRegistrationLock:   {i18n.NoticeRecentlyRegistered, SeverityError},
	StatusServerTransferProhibited: {i18n.NoticeServerTransferProhibited, SeverityError},
	StatusMapped:                   {i18n.NoticeMapped, SeverityWarning},
	StatusMappedSameSite:           {i18n.NoticeMappedSameSite, SeverityInfo},
	StatusRegisteredOtherSite:      {i18n.NoticeRegisteredOtherSite, SeverityWarning},
	StatusTLDNotSupported:          {i18n.NoticeTLDNotSupported, SeverityError},
	StatusTLDNotSupportedTemporary: {i18n.NoticeTLDNotSupportedTemporary, SeverityWarning},
	StatusInvalidTLD:               {i18n.NoticeInvalidTLD, SeverityError},
	StatusNotRegistrable:           {i18n.NoticeNotRegistrable, SeverityError},
	StatusForbidden:                {i18n.NoticeForbidden, SeverityError},
	StatusInRedemption:             {i18n.NoticeInRedemption, SeverityError},
	StatusMaintenance:              {i18n.NoticeMaintenance, SeverityWarning},
	StatusPurchasesDisabled:        {i18n.NoticePurchasesDisabled, SeverityWarning},
	StatusDotBlogSubdomain:         {i18n.NoticeDotBlogSubdomain, SeverityError},
	StatusUnknownActive:            {i18n.NoticeUnknownActive, SeverityWarning},
}

// Notice resolves the notice for domain in the given status. site names the
// site the domain is already attached to, when known. forTransfer selects the
// wording used while the user is trying to transfer the domain in.
func (r *Resolver) Notice(domain string, status Status, site string, forTransfer bool) Notice {
	domain = strings.TrimSpace(domain)

	switch status {
	case StatusUnknown:
		return Notice{}
	case StatusAvailable:
		if forTransfer {
			return r.render(i18n.NoticeAvailableNotTransferrable, SeverityError, domain)
		}
		return r.render(i18n.NoticeAvailable, SeverityInfo, domain)
	case StatusTransferrable:
		// only worth a notice when the transfer itself was rejected
		if forTransfer {
			return r.render(i18n.NoticeTransferrable, SeverityError, domain)
		}
		return Notice{}
	case StatusRegisteredSameSite:
		if site != "" {
			return r.render(i18n.NoticeRegisteredSameSiteNamed, SeverityInfo, domain, site)
		}
		return r.render(i18n.NoticeRegisteredSameSite, SeverityInfo, domain)
	}

	if rl, ok := rules[status]; ok {
		return r.render(rl.key, rl.severity, domain)
	}
	return Notice{}
}

func (r *Resolver) render(key string, sev Severity, params ...string) Notice {
	return Notice{Message: r.tr.T(key, params...), Severity: sev}
}
