package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig controls the Redis response cache in front of the catalog
// proxy endpoints.  Catalog data is a point-in-time snapshot: branches
// and movies change rarely, seat occupancy changes within tens of
// seconds, so the two TTLs differ.  When Enabled is false or no Redis
// client is available the cache middleware becomes a pass-through.
type CacheConfig struct {
	Enabled     bool
	CatalogTTL  time.Duration // branches, movies, showtimes, refreshments, vouchers
	SnapshotTTL time.Duration // seat layout / occupancy snapshots
	Prefix      string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:     getenv("CACHE_ENABLED", "true") == "true",
		CatalogTTL:  parseDur(getenv("CACHE_CATALOG_TTL", "2m")),
		SnapshotTTL: parseDur(getenv("CACHE_SNAPSHOT_TTL", "20s")),
		Prefix:      getenv("CACHE_PREFIX", "cache"),
	}
}

// Helper functions shared with ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
