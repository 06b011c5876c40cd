package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/staynest/rental-platform/internal/core/domain"
)

const listingTTL = 5 * time.Minute

// ListingCache caches single-listing lookups in Redis.
// Key format: listing:<property_id>
//
// Every failure is downgraded to a cache miss and logged at warn level;
// the store stays the source of truth.
type ListingCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client, logger zerolog.Logger) *ListingCache {
	return &ListingCache{client: client, logger: logger}
}

// Get returns the cached listing, or (nil, false) on miss or any error.
func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Property, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("property_id", id).Msg("listing cache read failed")
		}
		return nil, false
	}

	var p domain.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		c.logger.Warn().Err(err).Str("property_id", id).Msg("listing cache entry corrupt")
		return nil, false
	}
	return &p, true
}

// Set stores the listing with a short TTL.
func (c *ListingCache) Set(ctx context.Context, p *domain.Property) {
	raw, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn().Err(err).Str("property_id", p.ID).Msg("listing cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(p.ID), raw, listingTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("property_id", p.ID).Msg("listing cache write failed")
	}
}

// Invalidate removes the cached listing after a mutation.
func (c *ListingCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("property_id", id).Msg("listing cache invalidate failed")
	}
}

func (c *ListingCache) key(id string) string {
	return fmt.Sprintf("listing:%s", id)
}
