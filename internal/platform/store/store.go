// Package store provides the short-lived result cache behind remote lookups
package store

import (
	"context"
	"errors"
	"time"

	perr "xferlock/internal/platform/errors"
	"xferlock/internal/platform/logger"
)

// ErrMiss reports a key that is absent or expired
var ErrMiss = errors.New("store: cache miss")

// Cache is a TTL key value seam over opaque bytes
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Store is the facade over the configured cache backend
// zero value is safe but caches nothing
type Store struct {
	// Log is the logger used by backends
	Log logger.Logger

	// Cache is the selected backend, never nil after Open
	Cache Cache

	redis redisClient
	now   func() time.Time
}

// Open constructs a Store with the backend named in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{now: time.Now}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	switch cfg.Backend {
	case "", BackendMemory:
		s.Cache = NewMemory(WithNow(s.now))
	case BackendRedis:
		rc, err := openRedis(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.Cache = rc
	default:
		return nil, perr.InvalidArgf("store: unknown cache backend %q", cfg.Backend)
	}

	s.Log.Debug().Str("backend", cfg.backendName()).Msg("cache opened")
	return s, nil
}

// Guard verifies the backend is reachable
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.Cache.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "cache ping failed")
		}
	}
	return nil
}

// Close closes the backend; nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.Cache.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
