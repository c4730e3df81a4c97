// Package cache provides a Redis-backed cache for the read-only reference
// catalogs (species, behaviours). The cache is best-effort: when Redis is
// unavailable every operation degrades to a miss.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis client. nil when Redis is unavailable.
var Client *redis.Client

// Cache keys and TTLs for the reference catalogs.
const (
	SpeciesKey    = "catalog:species"
	BehavioursKey = "catalog:behaviours"
	CatalogTTL    = 10 * time.Minute
)

// InitRedis connects the shared client, degrading to no cache when the
// server cannot be reached.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without cache", "error", err)
		Client = nil
	}
}

// GetClient returns the shared Redis client, or nil when caching is disabled.
func GetClient() *redis.Client {
	return Client
}
