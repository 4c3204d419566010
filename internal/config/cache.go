package config

import (
	"strings"
	"time"
)

// CacheConfig tunes the Redis response cache.  The cache sits in
// front of the whole route tree, so the default key strategy includes
// the authenticated user: room-type and room listings are shared but
// a guest's booking list must never be served from another guest's
// cache entry.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods eligible for caching
	TTL          time.Duration
	KeyStrategy  string // route, method_route, method_route_query, user_route_query, route_query
	Prefix       string
	MaxBodyBytes int // responses larger than this are served but not stored
}

// LoadCacheConfig reads the cache settings from the environment.
// Room calendars change on every confirmation, so the default TTL is
// kept short.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "user_route_query"),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
