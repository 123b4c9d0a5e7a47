package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	tterrors "github.com/matzehuels/tooltipper/pkg/errors"
)

// DefaultRedisPrefix namespaces keys written by RedisCache.
const DefaultRedisPrefix = "tooltipper:"

// RedisCache stores entries in Redis so that several server instances share
// results.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the Redis server at url (redis://host:port/db),
// retrying the initial ping with backoff.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, tterrors.Wrap(tterrors.ErrCodeInvalidConfig, err, "redis url")
	}
	client := redis.NewClient(opts)

	err = RetryWithBackoff(ctx, func() error {
		return pingRetryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, tterrors.Wrap(tterrors.ErrCodeInternal, err, "connect to redis at %s", opts.Addr)
	}
	return NewRedisCacheFromClient(client), nil
}

// pingRetryable marks connection failures as retryable. A reply from the
// server itself (wrong password, unknown database) is final.
func pingRetryable(err error) error {
	if err == nil {
		return nil
	}
	var reply redis.Error
	if errors.As(err, &reply) {
		return err
	}
	return Retryable(err)
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: DefaultRedisPrefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
