// Package service runs live validation sessions, batch forms and one-shot checks
package service

import (
	"context"
	"sync"
	"time"

	"xferlock/internal/core/debounce"
	"xferlock/internal/core/domainname"
	"xferlock/internal/core/verdict"
	"xferlock/internal/platform/logger"
	acdom "xferlock/internal/services/authcheck/domain"
	dom "xferlock/internal/services/transfer/domain"

	"github.com/google/uuid"
)

// Config tunes a Session
type Config struct {
	// Delay is the debounce quiet period, default debounce.DefaultDelay
	Delay time.Duration
	// AfterFunc replaces the timer scheduler, tests pass a manual clock
	AfterFunc debounce.AfterFunc
	// Site names the site the domains are being attached to, if known
	Site string
	// Syntax overrides the domain checker used for gating
	Syntax domainname.Checker
}

type query struct {
	key      acdom.Key
	gen      uint64
	fetching bool
	done     bool
	result   acdom.Result
	err      error
	cancel   context.CancelFunc
}

// Session validates one entry as the user types.
//
// Raw changes go through Update. Each field is debounced; once both settle on a
// checkable pair the session issues one remote check for it. Results of checks
// that were superseded in the meantime are dropped. Every recomputed verdict
// that differs from the previous one is published to subscribers in order.
type Session struct {
	id       string
	checker  acdom.CheckerPort
	composer *verdict.Composer
	syntax   domainname.Checker
	site     string

	domain *debounce.Debouncer[string]
	auth   *debounce.Debouncer[string]

	ctx    context.Context
	stop   context.CancelFunc
	done   chan struct{}
	flight sync.WaitGroup

	mu      sync.Mutex
	raw     dom.Input
	q       query
	gen     uint64
	current verdict.Verdict
	version uint64
	subs    map[int]func(verdict.Verdict)
	nextSub int
	closed  bool

	// pub serializes delivery so subscribers observe verdicts in order
	pub       sync.Mutex
	delivered uint64
}

// NewSession starts an empty session. A nil composer uses English messages
func NewSession(checker acdom.CheckerPort, composer *verdict.Composer, cfg Config) *Session {
	if composer == nil {
		composer = verdict.New(nil)
	}
	if cfg.Syntax == nil {
		cfg.Syntax = domainname.Syntax
	}
	ctx, stop := context.WithCancel(context.Background())
	s := &Session{
		id:       uuid.NewString(),
		checker:  checker,
		composer: composer,
		syntax:   cfg.Syntax,
		site:     cfg.Site,
		ctx:      ctx,
		stop:     stop,
		done:     make(chan struct{}),
		subs:     map[int]func(verdict.Verdict){},
	}

	settle := func(string) { s.refresh() }
	dopts := []debounce.Option[string]{debounce.WithOnSettle[string](settle)}
	if cfg.AfterFunc != nil {
		dopts = append(dopts, debounce.WithAfterFunc[string](cfg.AfterFunc))
	}
	s.domain = debounce.New("", cfg.Delay, dopts...)
	s.auth = debounce.New("", cfg.Delay, dopts...)

	s.current = s.composeLocked("", "")
	return s
}

// ID identifies the session in logs and over the API
func (s *Session) ID() string { return s.id }

// Update records a raw change and publishes the resulting verdict
func (s *Session) Update(in dom.Input) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.raw = in
	s.mu.Unlock()

	s.domain.Set(in.Domain)
	s.auth.Set(in.AuthCode)
	s.refresh()
}

// Verdict returns the latest verdict
func (s *Session) Verdict() verdict.Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Input returns the latest raw input
func (s *Session) Input() dom.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Flush settles both fields immediately instead of waiting out the delay
func (s *Session) Flush() {
	s.domain.Flush()
	s.auth.Flush()
}

// Refetch drops the cached answer for the current pair and asks the registrar again.
// It does nothing when no check has been issued for the current debounced pair,
// or when the entry no longer passes local validation
func (s *Session) Refetch() {
	s.mu.Lock()
	if s.closed || !s.q.fetching && !s.q.done {
		s.mu.Unlock()
		return
	}
	dd, da := s.domain.Value(), s.auth.Value()
	if !s.checkable(dd, da) || s.q.key != (acdom.Key{Domain: dd, AuthCode: da}) {
		s.mu.Unlock()
		return
	}
	s.issueLocked(s.q.key, true)
	s.mu.Unlock()
	s.refresh()
}

// Subscribe registers fn for every published verdict and returns its cancel func.
// fn runs on the publishing goroutine and must not call back into the session
func (s *Session) Subscribe(fn func(verdict.Verdict)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			// wait out an in-flight delivery so fn is never called after cancel returns
			s.pub.Lock()
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			s.pub.Unlock()
		})
	}
}

// Watch returns a channel holding the latest verdict, starting with the current one.
// Slow readers skip intermediate verdicts. The channel closes when ctx is done or
// the session is closed
func (s *Session) Watch(ctx context.Context) <-chan verdict.Verdict {
	ch := make(chan verdict.Verdict, 1)
	offer := func(v verdict.Verdict) {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}

	s.pub.Lock()
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = offer
	offer(s.current)
	s.mu.Unlock()
	s.pub.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.pub.Lock()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
		s.pub.Unlock()
	}()
	return ch
}

// Settle flushes pending edits and waits until the verdict is no longer loading
func (s *Session) Settle(ctx context.Context) (verdict.Verdict, error) {
	s.Flush()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch := s.Watch(wctx)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				if err := ctx.Err(); err != nil {
					return s.Verdict(), err
				}
				return s.Verdict(), nil
			}
			if !v.Loading {
				return v, nil
			}
		case <-ctx.Done():
			return s.Verdict(), ctx.Err()
		}
	}
}

// Close cancels timers and any in-flight check, then waits for them to finish
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.q.cancel != nil {
		s.q.cancel()
	}
	s.mu.Unlock()

	s.domain.Close()
	s.auth.Close()
	s.stop()
	close(s.done)
	s.flight.Wait()
}

func (s *Session) refresh() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	dd, da := s.domain.Value(), s.auth.Value()
	s.maybeIssueLocked(dd, da)
	v := s.composeLocked(dd, da)
	if !v.Equal(s.current) || (v.Err == nil) != (s.current.Err == nil) {
		s.version++
	}
	s.current = v
	s.mu.Unlock()

	s.publish()
}

func (s *Session) publish() {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	if s.version == s.delivered {
		s.mu.Unlock()
		return
	}
	s.delivered = s.version
	v := s.current
	subs := make([]func(verdict.Verdict), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (s *Session) checkable(dd, da string) bool {
	return s.syntax.ResemblesDomain(dd) &&
		!domainname.IsBlank(da) &&
		!domainname.IsBlank(s.raw.AuthCode) &&
		!s.raw.HasDuplicates
}

func (s *Session) maybeIssueLocked(dd, da string) {
	if !s.checkable(dd, da) {
		if s.q.fetching {
			s.q.cancel()
			s.gen++
			s.q = query{}
		}
		return
	}
	key := acdom.Key{Domain: dd, AuthCode: da}
	if key == s.q.key && (s.q.fetching || s.q.done) {
		return
	}
	s.issueLocked(key, false)
}

func (s *Session) issueLocked(key acdom.Key, bypass bool) {
	if s.q.cancel != nil {
		s.q.cancel()
	}
	s.gen++
	ctx, cancel := context.WithCancel(s.ctx)
	s.q = query{key: key, gen: s.gen, fetching: true, cancel: cancel}

	log := logger.Named("transfer")
	log.Debug().Str("session_id", s.id).Str("domain", key.Domain).Uint64("gen", s.gen).Bool("refresh", bypass).Msg("auth check issued")

	gen := s.gen
	s.flight.Add(1)
	go func() {
		defer s.flight.Done()
		defer cancel()
		var (
			res acdom.Result
			err error
		)
		if bypass {
			res, err = s.checker.Refresh(ctx, key)
		} else {
			res, err = s.checker.Check(ctx, key)
		}
		s.land(gen, res, err)
	}()
}

func (s *Session) land(gen uint64, res acdom.Result, err error) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		log := logger.Named("transfer")
		log.Debug().Str("session_id", s.id).Uint64("gen", gen).Msg("stale auth check dropped")
		return
	}
	s.q.fetching = false
	s.q.done = true
	s.q.result = res
	s.q.err = err
	s.mu.Unlock()

	if err != nil {
		logger.C(logger.WithSession(context.Background(), s.id)).Warn().Err(err).Msg("auth check failed")
	}
	s.refresh()
}

func (s *Session) composeLocked(dd, da string) verdict.Verdict {
	in := verdict.Input{
		Domain:            s.raw.Domain,
		AuthCode:          s.raw.AuthCode,
		DebouncedDomain:   dd,
		DebouncedAuthCode: da,
		HasDuplicates:     s.raw.HasDuplicates,
		Refetch:           s.Refetch,
		Site:              s.site,
	}
	cur := acdom.Key{Domain: dd, AuthCode: da}
	if s.q.key == cur {
		in.Fetching = s.q.fetching
		if s.q.done {
			if s.q.err != nil {
				in.Err = s.q.err
			} else {
				in.Remote = &verdict.Remote{Status: s.q.result.Status, AuthCodeValid: s.q.result.AuthCodeValid}
			}
		}
	}
	return s.composer.Compose(in)
}
