// Package cache is a thin key-value client over Redis.
//
// Set writes the value and, when an expiry is given, applies it with a second
// EXPIRE round trip. The two commands are not atomic: a failure between them
// leaves the key without a TTL, and a concurrent Get or Delete may observe the
// key in between. Callers that need set-with-expiry atomicity must not rely on
// this client for it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pangate/pkg/platform/sentinel"
)

// Client sets, gets and deletes string values. The underlying connection is
// owned by the caller.
type Client struct {
	rdb redis.Cmdable
}

// New wraps an existing Redis connection.
func New(rdb redis.Cmdable) *Client {
	return &Client{rdb: rdb}
}

// Set overwrites key with value. A positive expire adds a TTL, truncated to
// whole seconds with a one second floor.
func (c *Client) Set(ctx context.Context, key, value string, expire time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	if expire <= 0 {
		return nil
	}
	seconds := expire / time.Second
	if seconds < 1 {
		seconds = 1
	}
	if err := c.rdb.Expire(ctx, key, seconds*time.Second).Err(); err != nil {
		return fmt.Errorf("cache expire %s: %w", key, err)
	}
	return nil
}

// Get returns the stored value or sentinel.ErrNotFound when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache get %s: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("cache get %s: %w", key, err)
	}
	return v, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}
