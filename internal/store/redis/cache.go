// Package redis caches classification results so re-bookmarked URLs
// skip the AI round trip. The cache is strictly best-effort: every
// failure is logged and reported as a miss.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/logger"
)

// Cache stores classification results keyed by URL with a TTL.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewCache(client *goredis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Get retrieves a cached classification. A miss, an unreachable server
// and a corrupt entry all report (nil, false).
func (c *Cache) Get(ctx context.Context, url string) (*domain.Classification, bool) {
	data, err := c.client.Get(ctx, ClassificationKey(url)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("classification cache read failed",
				logger.String("url", url), logger.Error(err))
		}
		return nil, false
	}

	var result domain.Classification
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.Warn("classification cache entry corrupt",
			logger.String("url", url), logger.Error(err))
		return nil, false
	}
	return &result, true
}

// Set stores a classification result. Failures are logged, never
// surfaced.
func (c *Cache) Set(ctx context.Context, url string, result *domain.Classification) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("classification cache encode failed",
			logger.String("url", url), logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, ClassificationKey(url), data, c.ttl).Err(); err != nil {
		c.log.Warn("classification cache write failed",
			logger.String("url", url), logger.Error(err))
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
