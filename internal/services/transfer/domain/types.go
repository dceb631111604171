// Package domain defines the types shared by the transfer validation flows
package domain

import (
	"xferlock/internal/core/verdict"
)

// Entry is one domain and auth code pair as typed by the user
type Entry struct {
	Domain   string `json:"domain" yaml:"domain"`
	AuthCode string `json:"auth_code" yaml:"auth_code"`
}

// Input is a raw change pushed into a validation session
type Input struct {
	Domain        string
	AuthCode      string
	HasDuplicates bool
}

// Result is the wire form of a verdict
type Result struct {
	Valid      bool           `json:"valid"`
	Loading    bool           `json:"loading"`
	Message    string         `json:"message"`
	Reason     verdict.Reason `json:"reason"`
	CanRefetch bool           `json:"can_refetch"`
}

// ResultOf converts a verdict for transport
func ResultOf(v verdict.Verdict) Result {
	return Result{
		Valid:      v.Valid,
		Loading:    v.Loading,
		Message:    v.Message,
		Reason:     v.Reason,
		CanRefetch: v.CanRefetch(),
	}
}

// EntryVerdict pairs a form entry with its current verdict
type EntryVerdict struct {
	ID      string          `json:"id"`
	Entry   Entry           `json:"entry"`
	Verdict verdict.Verdict `json:"verdict"`
}

// Summary aggregates the verdicts of a form
type Summary struct {
	Total      int  `json:"total"`
	Valid      int  `json:"valid"`
	Loading    int  `json:"loading"`
	Invalid    int  `json:"invalid"`
	AllValid   bool `json:"all_valid"`
	AnyLoading bool `json:"any_loading"`
}
