package profile

import (
	"context"
	"encoding/json"
	"time"

	"wayfare/models"
	"wayfare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the redis-backed profile read cache. Every profile write and
// stat recompute invalidates; a miss just falls through to mongo.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewCache creates a profile cache with a default TTL of ten minutes.
func NewCache(client *redis.Client) *Cache {
	return &Cache{Client: client, TTL: 10 * time.Minute}
}

func cacheKey(ownerID string) string {
	return "profile:" + ownerID
}

// Get returns the cached profile or nil on miss/error.
func (c *Cache) Get(ownerID string) *models.ProviderProfile {
	if c == nil || c.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.Client.Get(ctx, cacheKey(ownerID)).Bytes()
	if err != nil {
		return nil
	}
	var profile models.ProviderProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}

// Set stores the profile; cache errors are logged, never surfaced.
func (c *Cache) Set(profile *models.ProviderProfile) {
	if c == nil || c.Client == nil || profile == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, cacheKey(profile.OwnerID), data, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache profile", zap.String("ownerID", profile.OwnerID), zap.Error(err))
	}
}

// Invalidate drops the cached profile.
func (c *Cache) Invalidate(ownerID string) {
	if c == nil || c.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Client.Del(ctx, cacheKey(ownerID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate profile cache", zap.String("ownerID", ownerID), zap.Error(err))
	}
}
