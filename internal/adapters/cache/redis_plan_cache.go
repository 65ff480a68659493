package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mission-plan:"

// RedisPlanCache stores encoded mission reports in Redis with a TTL.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// NewRedisPlanCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisPlanCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisPlanCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("plan cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("plan cache: ping redis: %w", err)
	}
	return NewRedisPlanCache(client, ttl), nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	b, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("plan cache: get %s: %w", key, err)
	}
	return b, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, body []byte) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}

	if err := c.Client.Set(ctx, keyPrefix+key, body, c.TTL).Err(); err != nil {
		return fmt.Errorf("plan cache: set %s: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// NopPlanCache never stores anything. Used when no Redis URL is configured.
type NopPlanCache struct{}

func (NopPlanCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopPlanCache) Put(context.Context, string, []byte) error { return nil }
