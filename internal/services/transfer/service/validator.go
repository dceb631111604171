package service

import (
	"context"

	"xferlock/internal/core/domainname"
	"xferlock/internal/core/verdict"
	acdom "xferlock/internal/services/authcheck/domain"
	dom "xferlock/internal/services/transfer/domain"

	"golang.org/x/sync/errgroup"
)

const defaultBatchLimit = 8

// Validator produces verdicts for already settled input, as used by the API and CLI.
// There is no debounce: the raw values are the debounced values
type Validator struct {
	checker acdom.CheckerPort
	syntax  domainname.Checker
	limit   int
	site    string
}

// ValidatorOption configures a Validator
type ValidatorOption func(*Validator)

// WithSite names the site domains are attached to, used by availability notices
func WithSite(site string) ValidatorOption {
	return func(v *Validator) { v.site = site }
}

// NewValidator returns a Validator running at most limit remote checks at once per batch
func NewValidator(checker acdom.CheckerPort, limit int, opts ...ValidatorOption) *Validator {
	if limit <= 0 {
		limit = defaultBatchLimit
	}
	v := &Validator{checker: checker, syntax: domainname.Syntax, limit: limit}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate returns the verdict for one entry. With bypass set the cached answer is ignored
func (v *Validator) Validate(ctx context.Context, c *verdict.Composer, e dom.Entry, hasDuplicates, bypass bool) verdict.Verdict {
	in := verdict.Settled(e.Domain, e.AuthCode, hasDuplicates)
	in.Site = v.site
	if !hasDuplicates && v.syntax.ResemblesDomain(e.Domain) && !domainname.IsBlank(e.AuthCode) {
		key := acdom.Key{Domain: e.Domain, AuthCode: e.AuthCode}
		var (
			res acdom.Result
			err error
		)
		if bypass {
			res, err = v.checker.Refresh(ctx, key)
		} else {
			res, err = v.checker.Check(ctx, key)
		}
		if err != nil {
			in.Err = err
		} else {
			in.Remote = &verdict.Remote{Status: res.Status, AuthCodeValid: res.AuthCodeValid}
		}
	}
	return c.Compose(in)
}

// ValidateBatch validates entries concurrently, flagging later duplicates.
// Remote failures surface in the individual verdicts, never as an error
func (v *Validator) ValidateBatch(ctx context.Context, c *verdict.Composer, entries []dom.Entry) []verdict.Verdict {
	dups := Duplicates(entries)
	out := make([]verdict.Verdict, len(entries))

	var g errgroup.Group
	g.SetLimit(v.limit)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			out[i] = v.Validate(ctx, c, e, dups[i], false)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
