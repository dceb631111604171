// Package service implements the auth code checker with request sharing and a TTL cache
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"xferlock/internal/core/domainname"
	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
	"xferlock/internal/platform/store"
	dom "xferlock/internal/services/authcheck/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "xferlock:authcheck"
)

// Config for the checker service
type Config struct {
	// TTL bounds how long a successful result is reused, default 5m
	TTL time.Duration
	// Namespace prefixes cache keys
	Namespace string
}

// Service implements domain.CheckerPort over a RemotePort
type Service struct {
	remote dom.RemotePort
	cache  store.Cache
	cfg    Config
	syntax domainname.Checker
	group  singleflight.Group

	// mu guards gens and orders cache writes against Refresh
	mu   sync.Mutex
	gens map[string]*generation
}

// generation tracks lookups for one cache key; Refresh bumps gen so lookups
// it superseded do not store their answer
type generation struct {
	gen     uint64
	running int
}

// Option configures a Service
type Option func(*Service)

// WithChecker overrides the syntax checker used for gating
func WithChecker(c domainname.Checker) Option {
	return func(s *Service) {
		if c != nil {
			s.syntax = c
		}
	}
}

// New constructs the service; a nil cache falls back to an in-process one
func New(remote dom.RemotePort, cache store.Cache, cfg Config, opts ...Option) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Namespace == "" {
		cfg.Namespace = defaultNamespace
	}
	if cache == nil {
		cache = store.NewMemory()
	}
	s := &Service{
		remote: remote,
		cache:  cache,
		cfg:    cfg,
		syntax: domainname.Syntax,
		gens:   map[string]*generation{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check implements domain.CheckerPort
func (s *Service) Check(ctx context.Context, k dom.Key) (dom.Result, error) {
	k, err := s.gate(k)
	if err != nil {
		return dom.Result{}, err
	}
	ck := s.cacheKey(k)

	if b, err := s.cache.Get(ctx, ck); err == nil {
		var res dom.Result
		if jerr := json.Unmarshal(b, &res); jerr == nil {
			logger.C(ctx).Debug().Str("domain", k.Domain).Msg("authcheck cache hit")
			return res, nil
		}
		_ = s.cache.Delete(ctx, ck)
	} else if !errors.Is(err, store.ErrMiss) {
		logger.C(ctx).Warn().Err(err).Msg("authcheck cache read failed")
	}

	return s.shared(ctx, ck, k)
}

// Refresh implements domain.CheckerPort
func (s *Service) Refresh(ctx context.Context, k dom.Key) (dom.Result, error) {
	k, err := s.gate(k)
	if err != nil {
		return dom.Result{}, err
	}
	ck := s.cacheKey(k)

	s.mu.Lock()
	s.entry(ck).gen++
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, ck); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("authcheck cache evict failed")
	}
	s.group.Forget(ck)
	return s.shared(ctx, ck, k)
}

// entry returns the generation record for ck; callers hold s.mu
func (s *Service) entry(ck string) *generation {
	g, ok := s.gens[ck]
	if !ok {
		g = &generation{}
		s.gens[ck] = g
	}
	return g
}

// begin registers a lookup for ck and returns the generation it belongs to
func (s *Service) begin(ck string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.entry(ck)
	g.running++
	return g.gen
}

// finish stores b unless a Refresh superseded gen, then drops the record
// once no lookup for ck is left
func (s *Service) finish(ctx context.Context, ck string, gen uint64, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.entry(ck)
	if b != nil && g.gen == gen {
		if err := s.cache.Set(ctx, ck, b, s.cfg.TTL); err != nil {
			logger.C(ctx).Warn().Err(err).Msg("authcheck cache write failed")
		}
	} else if b != nil {
		logger.C(ctx).Debug().Str("key", ck).Msg("authcheck superseded answer not cached")
	}
	if g.running--; g.running <= 0 {
		delete(s.gens, ck)
	}
}

// gate applies the local checks that must hold before any network call
func (s *Service) gate(k dom.Key) (dom.Key, error) {
	if !s.syntax.ResemblesDomain(k.Domain) {
		return k, perr.WithField(perr.InvalidArgf("domain %q is not a valid domain name", k.Domain), "domain")
	}
	if domainname.IsBlank(k.AuthCode) {
		return k, perr.WithField(perr.InvalidArgf("auth code is required"), "auth_code")
	}
	return k.Canonical(), nil
}

func (s *Service) cacheKey(k dom.Key) string {
	return store.Key(s.cfg.Namespace, k.Domain, k.AuthCode)
}

// shared joins or starts the single call for ck. The call runs detached from
// ctx so one waiter giving up does not fail the others.
func (s *Service) shared(ctx context.Context, ck string, k dom.Key) (dom.Result, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(ck, func() (any, error) {
		gen := s.begin(ck)
		res, err := s.remote.CheckAuthCode(detached, k)
		if err != nil {
			s.finish(detached, ck, gen, nil)
			return nil, err
		}
		b, _ := json.Marshal(res)
		s.finish(detached, ck, gen, b)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return dom.Result{}, perr.Wrap(ctx.Err(), perr.ErrorCodeCanceled, "authcheck wait canceled")
	case r := <-ch:
		if r.Err != nil {
			lvl := zerolog.ErrorLevel
			if perr.Retryable(r.Err) {
				lvl = zerolog.WarnLevel
			}
			logger.C(ctx).WithLevel(lvl).Err(r.Err).Str("domain", k.Domain).Bool("shared", r.Shared).Msg("authcheck remote failed")
			return dom.Result{}, r.Err
		}
		return r.Val.(dom.Result), nil
	}
}
