// Package i18n holds message catalogs and Accept-Language negotiation
package i18n

import (
	"strings"
	"sync"

	perr "xferlock/internal/platform/errors"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// Translator maps a message key and positional params to display text
type Translator interface {
	T(key string, params ...string) string
	Locale() string
}

// Catalog owns every supported locale
type Catalog struct {
	uni      *ut.UniversalTranslator
	fallback ut.Translator
	tags     []language.Tag
	names    []string
	matcher  language.Matcher
}

// DefaultLocale is used when nothing else matches
const DefaultLocale = "en"

var (
	defOnce sync.Once
	def     *Catalog
	defErr  error
)

// Default returns the process-wide catalog with the built-in messages
func Default() *Catalog {
	defOnce.Do(func() { def, defErr = New() })
	if defErr != nil {
		panic(defErr)
	}
	return def
}

// New builds a catalog from the built-in message tables
func New() (*Catalog, error) {
	return NewWith(map[string]map[string]string{
		"en": English,
		"es": Spanish,
	})
}

// NewWith builds a catalog from explicit tables keyed by locale; "en" is required
func NewWith(tables map[string]map[string]string) (*Catalog, error) {
	if _, ok := tables[DefaultLocale]; !ok {
		return nil, perr.InvalidArgf("i18n: %s table required", DefaultLocale)
	}

	supported := map[string]locales.Translator{
		"en": en.New(),
		"es": es.New(),
	}
	var extra []locales.Translator
	names := []string{DefaultLocale}
	for loc := range tables {
		if loc == DefaultLocale {
			continue
		}
		lt, ok := supported[loc]
		if !ok {
			return nil, perr.InvalidArgf("i18n: unsupported locale %q", loc)
		}
		extra = append(extra, lt)
		names = append(names, loc)
	}

	uni := ut.New(supported[DefaultLocale], append([]locales.Translator{supported[DefaultLocale]}, extra...)...)
	tags := make([]language.Tag, 0, len(names))
	for _, loc := range names {
		tr, _ := uni.GetTranslator(loc)
		for key, text := range tables[loc] {
			if err := tr.Add(key, text, false); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "i18n: %s %s", loc, key)
			}
		}
		tags = append(tags, language.Make(loc))
	}

	fb, _ := uni.GetTranslator(DefaultLocale)
	return &Catalog{
		uni:      uni,
		fallback: fb,
		tags:     tags,
		names:    names,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// For returns the translator for an exact locale code, falling back to English
func (c *Catalog) For(locale string) Translator {
	loc := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(loc, "-_"); i > 0 {
		loc = loc[:i]
	}
	for _, n := range c.names {
		if n == loc {
			tr, _ := c.uni.GetTranslator(n)
			return localized{tr: tr, fb: c.fallback, name: n}
		}
	}
	return localized{tr: c.fallback, fb: c.fallback, name: DefaultLocale}
}

// Match negotiates an Accept-Language header value against the supported locales
func (c *Catalog) Match(acceptLanguage string) Translator {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.For(DefaultLocale)
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.For(DefaultLocale)
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.For(DefaultLocale)
	}
	return c.For(c.names[idx])
}

// Locales lists the supported locale codes, default first
func (c *Catalog) Locales() []string { return append([]string(nil), c.names...) }

type localized struct {
	tr   ut.Translator
	fb   ut.Translator
	name string
}

func (l localized) Locale() string { return l.name }

// T renders key, then tries English, then returns the key itself
func (l localized) T(key string, params ...string) string {
	if s, err := l.tr.T(key, params...); err == nil {
		return s
	}
	if s, err := l.fb.T(key, params...); err == nil {
		return s
	}
	return key
}

// Identity returns keys unchanged
var Identity Translator = identity{}

type identity struct{}

func (identity) T(key string, _ ...string) string { return key }
func (identity) Locale() string                   { return "" }
