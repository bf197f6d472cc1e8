// Package cache provides an optional Redis layer for website verification
// results and analysis cooldown keys. All methods are safe to call on a nil
// Cache; the workflow degrades to uncached behavior.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"postmarket/internal/models"
)

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at the given address.
func New(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetVerification returns a cached verification result, or nil on miss.
func (c *Cache) GetVerification(ctx context.Context, url string) (*models.VerificationResult, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, verificationKey(url)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result models.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetVerification caches a verification result with a TTL.
func (c *Cache) SetVerification(ctx context.Context, url string, result *models.VerificationResult, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, verificationKey(url), data, ttl).Err()
}

// MarkAnalyzed sets a cooldown key so on-demand re-analysis can't hammer a
// site.
func (c *Cache) MarkAnalyzed(ctx context.Context, requestID string, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, analyzedKey(requestID), "1", ttl).Err()
}

// RecentlyAnalyzed reports whether a request was analyzed within the
// cooldown window.
func (c *Cache) RecentlyAnalyzed(ctx context.Context, requestID string) (bool, error) {
	if c == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, analyzedKey(requestID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func verificationKey(url string) string {
	return fmt.Sprintf("verify:%s", url)
}

func analyzedKey(requestID string) string {
	return fmt.Sprintf("analyzed:%s", requestID)
}
