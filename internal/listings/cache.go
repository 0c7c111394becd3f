package listings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps each generated browsing set in Redis so repeated
// filter and pagination requests within a session hit the same data.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache. A nil client disables caching.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func cacheKey(category string, seed int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("listings:%s:%d", category, seed)))
	return "domihive:listings:" + hex.EncodeToString(sum[:16])
}

// Get returns the cached listing set for (category, seed), or nil on miss.
func (c *SessionCache) Get(ctx context.Context, category string, seed int64) []models.PropertyListing {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cacheKey(category, seed)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis GET error for listing session %s/%d: %v", category, seed, err)
		}
		return nil
	}
	var listings []models.PropertyListing
	if err := json.Unmarshal([]byte(data), &listings); err != nil {
		log.Printf("Corrupt listing session cache entry for %s/%d: %v", category, seed, err)
		return nil
	}
	return listings
}

// Set stores the listing set for (category, seed).
func (c *SessionCache) Set(ctx context.Context, category string, seed int64, listings []models.PropertyListing) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(listings)
	if err != nil {
		log.Printf("Failed to marshal listing session %s/%d: %v", category, seed, err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(category, seed), data, c.ttl).Err(); err != nil {
		log.Printf("Redis SET error for listing session %s/%d: %v", category, seed, err)
	}
}
