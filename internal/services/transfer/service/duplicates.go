package service

import (
	"xferlock/internal/core/domainname"
	dom "xferlock/internal/services/transfer/domain"
)

// Duplicates flags every entry whose normalized domain already appeared in an
// earlier entry. Blank domains never count as duplicates
func Duplicates(entries []dom.Entry) []bool {
	out := make([]bool, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if domainname.IsBlank(e.Domain) {
			continue
		}
		n := domainname.Normalize(e.Domain)
		if _, ok := seen[n]; ok {
			out[i] = true
			continue
		}
		seen[n] = struct{}{}
	}
	return out
}
