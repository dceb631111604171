// Package domainname holds the local, network-free checks on user-typed
// domain names and auth codes.
//
// Input is cleaned in a fixed order
// 1 trim and drop zero-width format characters
// 2 NFKC and width fold so fullwidth dots and letters become ASCII
// 3 strip an optional scheme, port, path, query and trailing dot
// 4 IDNA lookup mapping to the ASCII (punycode) form
package domainname

import (
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Checker answers whether a string resembles a domain name
type Checker interface {
	ResemblesDomain(s string) bool
}

// CheckerFunc adapts a plain function to Checker
type CheckerFunc func(string) bool

// ResemblesDomain implements Checker
func (f CheckerFunc) ResemblesDomain(s string) bool { return f(s) }

// Syntax is the default Checker backed by ResemblesDomain
var Syntax Checker = CheckerFunc(ResemblesDomain)

// maxDomainLen is the longest ASCII host name DNS allows
const maxDomainLen = 253

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF soft hyphen
			norm.NFKC,
			width.Fold,
		)
	},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func v() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// ResemblesDomain reports whether s looks like a registrable host name:
// at least two labels, RFC 1123 label grammar after IDNA mapping, and an
// alphabetic top-level label of two or more characters
func ResemblesDomain(s string) bool {
	host, ok := toASCII(s)
	if !ok {
		return false
	}
	if len(host) > maxDomainLen || !strings.Contains(host, ".") {
		return false
	}
	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" || strings.HasSuffix(l, "-") {
			return false
		}
		if err := v().Var(l, "hostname_rfc1123"); err != nil {
			return false
		}
	}
	return validTLD(labels[len(labels)-1])
}

// Normalize returns the canonical ASCII form of s, or the trimmed lower-case
// input when it cannot be mapped. Two entries naming the same domain normalize
// to the same string.
func Normalize(s string) string {
	if host, ok := toASCII(s); ok {
		return host
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAuthCodePresent reports whether domain resembles a domain and the trimmed
// auth code is non-empty. An auth code without a usable domain counts as absent.
func IsAuthCodePresent(domain, authCode string) bool {
	return ResemblesDomain(domain) && !IsBlank(authCode)
}

// IsBlank reports whether s is empty after trimming whitespace
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

func toASCII(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	tr := chainPool.Get().(transform.Transformer)
	clean, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return "", false
	}

	host := stripURL(strings.TrimSpace(clean))
	host = strings.TrimSuffix(host, ".")
	if host == "" || strings.ContainsAny(host, " \t@") {
		return "", false
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil || ascii == "" {
		return "", false
	}
	return strings.ToLower(ascii), true
}

// stripURL reduces a pasted URL to its host part
func stripURL(s string) string {
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return s
}

func validTLD(tld string) bool {
	if len(tld) < 2 {
		return false
	}
	if strings.HasPrefix(tld, "xn--") {
		return len(tld) > 4
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
