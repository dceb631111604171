// Package bind decodes JSON request bodies and validates them with messages in the request locale
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"xferlock/internal/core/domainname"
	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
	pnet "xferlock/internal/platform/net"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// Validator checks struct tags and renders the first failure in a supported locale
type Validator struct {
	v   *validator.Validate
	uni *ut.UniversalTranslator
}

// rule is a project tag with one message per locale
type rule struct {
	tag   string
	fn    validator.Func
	texts map[string]string
}

var rules = []rule{
	{
		tag: "domainish",
		fn: func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && domainname.ResemblesDomain(s)
		},
		texts: map[string]string{
			"en": "{0} must look like a domain name",
			"es": "{0} debe parecer un nombre de dominio",
		},
	},
}

var (
	defOnce sync.Once
	def     *Validator

	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Default returns the process-wide validator
func Default() *Validator {
	defOnce.Do(func() { def = New() })
	return def
}

// New builds a validator with english and spanish messages and the project tags
func New() *Validator {
	uni := ut.New(en.New(), en.New(), es.New())
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})

	enT, _ := uni.GetTranslator("en")
	esT, _ := uni.GetTranslator("es")
	_ = en_translations.RegisterDefaultTranslations(v, enT)
	_ = es_translations.RegisterDefaultTranslations(v, esT)
	registerText(v, enT, "max", "{0} must be at most {1}")
	registerText(v, enT, "min", "{0} must be at least {1}")

	for _, r := range rules {
		_ = v.RegisterValidation(r.tag, r.fn)
		for loc, text := range r.texts {
			tr, _ := uni.GetTranslator(loc)
			registerText(v, tr, r.tag, text)
		}
	}
	return &Validator{v: v, uni: uni}
}

// Struct validates s; a failure comes back as a validation error naming the field
func (vd *Validator) Struct(s any, locale string) error {
	err := vd.v.Struct(s)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := vd.firstFailure(err, locale)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

func (vd *Validator) firstFailure(err error, locale string) (field, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err.Error()
	}
	tr, _ := vd.uni.FindTranslator(locale, "en")
	fe := verrs[0]
	return fe.Field(), fe.Translate(tr)
}

func registerText(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Options controls body decoding
type Options struct {
	MaxBytes        int64 // 0 means unlimited
	DisallowUnknown bool
}

// Defaults suit the transfer endpoints, whose largest body is a batch of pairs
var Defaults = Options{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes one JSON value into T and validates it in the request locale
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero T
	o := Defaults
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("failed to close request body")
		}
	}()

	// peek so an empty body gets its own message
	buf := make([]byte, 1)
	n, _ := r.Body.Read(buf)
	if n == 0 {
		return zero, perr.JSONErrf("empty body")
	}
	var reader io.Reader = io.MultiReader(bytes.NewReader(buf[:n]), r.Body)
	if o.MaxBytes > 0 {
		reader = io.LimitReader(reader, o.MaxBytes)
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Default().Struct(dst, pnet.Locale(r.Context())); err != nil {
		return zero, err
	}
	return dst, nil
}
