// Package sigcache provides the backends for the profiler's signature cache.
package sigcache

import (
	"context"
	"fmt"
	"time"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

// Cache matches the profiler's cache contract.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Stats counts cache outcomes; hit ratio = Hits / (Hits + Misses).
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewFromConfig returns the configured backend. CacheTypeNone yields a nil
// Cache, which disables caching in the profiler.
func NewFromConfig(cfg config.CacheConfig, redisClient infra.RedisClient) (Cache, error) {
	switch cfg.Type {
	case "", enum.CacheTypeMemory:
		return NewMemory(), nil
	case enum.CacheTypeRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis cache selected but no redis client configured")
		}
		return NewRedis(redisClient, cfg.KeyPrefix), nil
	case enum.CacheTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}
