package store

import "time"

// Cache backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the cache backend
type Config struct {
	AppName string
	Backend string
	Redis   RedisConfig
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL as accepted by redis.ParseURL
	URL string

	// ConnectRetries bounds the boot ping loop, default 6
	ConnectRetries int
	// PingTimeout bounds a single ping, default 3s
	PingTimeout time.Duration
}

func (c Config) backendName() string {
	if c.Backend == "" {
		return BackendMemory
	}
	return c.Backend
}
