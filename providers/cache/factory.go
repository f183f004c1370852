package cache

import (
	"log/slog"
	"time"

	"travelcast.app/config"
)

// NewFromConfig builds the generic cache backend selected by configuration.
// A redis backend that cannot be reached at startup falls back to the
// in-memory cache so the service still starts.
func NewFromConfig(cfg *config.CacheConfig) GenericCacheInterface {
	if cfg.Backend == "redis" {
		redisCache, err := NewRedisCache(&RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err == nil {
			return redisCache
		}
		slog.Warn("Redis cache unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache()
}
