package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const imageKeyPrefix = "setu:screenshot:"

// InitRedis connects to addr, which may be host:port or a redis:// URL. An
// empty addr disables caching and returns a nil client.
func InitRedis(ctx context.Context, addr string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ImageCache keeps downloaded screenshot bytes keyed by the platform's stable
// file id. It never stores analysis results.
type ImageCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewImageCache(client redis.Cmdable, ttl time.Duration) *ImageCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ImageCache{client: client, ttl: ttl}
}

// Get reports a miss, not an error, when the cache is disabled.
func (c *ImageCache) Get(ctx context.Context, fileID string) ([]byte, bool, error) {
	if c == nil || c.client == nil || fileID == "" {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, imageKeyPrefix+fileID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *ImageCache) Set(ctx context.Context, fileID string, data []byte) error {
	if c == nil || c.client == nil || fileID == "" || len(data) == 0 {
		return nil
	}
	return c.client.Set(ctx, imageKeyPrefix+fileID, data, c.ttl).Err()
}
