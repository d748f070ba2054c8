package infra

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/retry"
)

// ErrRedisNil is returned by Get when the key does not exist.
var ErrRedisNil = redis.Nil

// RedisClient abstracts the few Redis calls the signature cache needs.
type RedisClient interface {
	GetClient() *redis.Client
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Close() error
}

// RedisWrapper implements RedisClient on top of a go-redis client.
type RedisWrapper struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) (RedisClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}

	// Compute pool size based on CPU
	cpus := runtime.GOMAXPROCS(0)
	opts := &redis.Options{
		Addr:            cfg.URL,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cpus * 10,
		MinIdleConns:    cpus * 2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	}
	client := redis.NewClient(opts)

	// verify connectivity right away
	err := retry.Constant(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pong, err := client.Ping(ctx).Result()
		if err == nil {
			logger.Info("Connected to Redis", "pong", pong, "addr", cfg.URL)
		}
		return redisDialError(err)
	}, time.Second, retry.DefaultMaxAttempts)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return WrapRedis(client), nil
}

// redisDialError marks authentication replies permanent.
func redisDialError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "NOAUTH") || strings.HasPrefix(msg, "WRONGPASS") || strings.Contains(msg, "invalid password") {
		return retry.Permanent(err)
	}
	return err
}

// WrapRedis adapts an existing go-redis client.
func WrapRedis(client *redis.Client) RedisClient {
	return &RedisWrapper{client: client}
}

func (rw *RedisWrapper) GetClient() *redis.Client {
	return rw.client
}

func (rw *RedisWrapper) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return rw.client.Set(ctx, key, value, expiration).Err()
}

func (rw *RedisWrapper) Get(ctx context.Context, key string) (string, error) {
	return rw.client.Get(ctx, key).Result()
}

func (rw *RedisWrapper) Del(ctx context.Context, keys ...string) error {
	return rw.client.Del(ctx, keys...).Err()
}

func (rw *RedisWrapper) Close() error {
	return rw.client.Close()
}
