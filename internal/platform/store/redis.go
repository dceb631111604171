package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	perr "xferlock/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

type redisClient = *redis.Client

// Redis is a Cache backed by a redis server
type Redis struct {
	c *redis.Client
}

// NewRedis wraps an existing client
func NewRedis(c *redis.Client) *Redis { return &Redis{c: c} }

// Get returns the stored bytes or ErrMiss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "redis get")
	}
	return b, nil
}

// Set stores val with ttl; a non-positive ttl never expires
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.c.Set(ctx, key, string(val), ttl).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "redis set")
	}
	return nil
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.c.Del(ctx, key).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "redis del")
	}
	return nil
}

// Ping checks connectivity
func (r *Redis) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Close releases the client
func (r *Redis) Close() error { return r.c.Close() }

var sleep = time.Sleep // seam

// openRedis dials redis and pings with backoff before publishing the cache
func openRedis(ctx context.Context, cfg Config, s *Store) (*Redis, error) {
	c := s.redis
	if c == nil {
		if cfg.Redis.URL == "" {
			return nil, perr.InvalidArgf("store: redis backend needs a URL")
		}
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "store: bad redis URL")
		}
		if cfg.AppName != "" {
			opt.ClientName = cfg.AppName
		}
		c = redis.NewClient(opt)
	}

	attempts := cfg.Redis.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	pingTimeout := cfg.Redis.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = c.Ping(toCtx).Err()
		cancel()

		if lastErr == nil {
			return NewRedis(c), nil
		}
		if ctx.Err() != nil {
			_ = c.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("redis ping failed")
		if i == attempts-1 {
			break
		}
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}

	_ = c.Close()
	return nil, perr.Wrap(fmt.Errorf("redis ping failed after %d attempts: %w", attempts, lastErr), perr.ErrorCodeUnavailable, "store: redis unreachable")
}
