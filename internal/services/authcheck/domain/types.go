// Package domain defines the types and ports for the remote auth code check
package domain

import (
	"strings"

	"xferlock/internal/core/availability"
	"xferlock/internal/core/domainname"
)

// Key identifies one lookup; identical keys share a network call and a cache entry
type Key struct {
	Domain   string
	AuthCode string
}

// Canonical returns the form sent to the registrar and used for caching:
// the domain in normalized ASCII and the auth code without surrounding space
func (k Key) Canonical() Key {
	return Key{
		Domain:   domainname.Normalize(k.Domain),
		AuthCode: strings.TrimSpace(k.AuthCode),
	}
}

// Result is the registrar's answer for a Key
type Result struct {
	Status        availability.Status `json:"status"`
	AuthCodeValid bool                `json:"auth_code_valid"`
}
