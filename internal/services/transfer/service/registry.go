package service

import (
	"context"
	"sync"
	"time"

	"xferlock/internal/core/verdict"
	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
)

// Registry keeps live sessions for the API, evicting ones left idle
type Registry struct {
	factory func(*verdict.Composer) *Session
	idle    time.Duration
	max     int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*registered
}

type registered struct {
	s    *Session
	last time.Time
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithRegistryClock overrides time.Now for idle accounting
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry holds at most max sessions built by factory; idle ones expire after idle
func NewRegistry(factory func(*verdict.Composer) *Session, idle time.Duration, max int, opts ...RegistryOption) *Registry {
	if idle <= 0 {
		idle = 15 * time.Minute
	}
	if max <= 0 {
		max = 1000
	}
	r := &Registry{
		factory:  factory,
		idle:     idle,
		max:      max,
		now:      time.Now,
		sessions: map[string]*registered{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Create starts a session rendering messages with c
func (r *Registry) Create(c *verdict.Composer) (*Session, error) {
	r.mu.Lock()
	expired := r.sweepLocked()
	if len(r.sessions) >= r.max {
		r.mu.Unlock()
		closeAll(expired)
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "too many open sessions")
	}
	s := r.factory(c)
	r.sessions[s.ID()] = &registered{s: s, last: r.now()}
	r.mu.Unlock()

	closeAll(expired)
	return s, nil
}

// Get returns the session with id and marks it used
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.sessions[id]
	if !ok || r.now().Sub(reg.last) > r.idle {
		return nil, perr.WithField(perr.NotFoundf("session %s not found", id), "id")
	}
	reg.last = r.now()
	return reg.s, nil
}

// Delete closes and forgets the session with id
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	reg, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return perr.WithField(perr.NotFoundf("session %s not found", id), "id")
	}
	reg.s.Close()
	return nil
}

// Len returns the number of sessions held, idle ones included until the next sweep
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close closes every session
func (r *Registry) Close() {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for id, reg := range r.sessions {
		all = append(all, reg.s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	closeAll(all)
}

// Sweep closes sessions idle for longer than the idle window and returns how many
func (r *Registry) Sweep() int {
	r.mu.Lock()
	expired := r.sweepLocked()
	r.mu.Unlock()
	closeAll(expired)
	return len(expired)
}

// Run sweeps every interval until ctx is done. A non-positive interval uses a quarter of the idle window
func (r *Registry) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = r.idle / 4
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *Registry) sweepLocked() []*Session {
	var out []*Session
	now := r.now()
	for id, reg := range r.sessions {
		if now.Sub(reg.last) > r.idle {
			out = append(out, reg.s)
			delete(r.sessions, id)
		}
	}
	if len(out) > 0 {
		log := logger.Named("transfer")
		log.Debug().Int("count", len(out)).Msg("idle sessions evicted")
	}
	return out
}

func closeAll(ss []*Session) {
	for _, s := range ss {
		s.Close()
	}
}
