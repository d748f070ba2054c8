package sigcache

import (
	"context"
	"errors"
	"time"

	"github.com/fystack/lotofacil-generator/pkg/common/constant"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

// Redis shares profiles across processes; expiry is left to Redis.
type Redis struct {
	client infra.RedisClient
	prefix string
}

func NewRedis(client infra.RedisClient, prefix string) *Redis {
	if prefix == "" {
		prefix = constant.ProfileKeyPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string {
	return r.prefix + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.key(key))
	if errors.Is(err, infra.ErrRedisNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl)
}
