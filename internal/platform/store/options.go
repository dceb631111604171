package store

import (
	"time"

	"xferlock/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithRedisClient uses an existing client instead of dialing Config.Redis.URL
func WithRedisClient(c *redis.Client) Option {
	return func(s *Store) error {
		s.redis = c
		return nil
	}
}

// WithClock sets the time source for the memory backend
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}
