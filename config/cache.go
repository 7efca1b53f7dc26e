package config

import (
    "fmt"
    "time"

    "github.com/patrickmn/go-cache"
)

const (
    hierarchyCacheDuration   = 24 * time.Hour
    hierarchyCleanupInterval = 48 * time.Hour
)

// NewHierarchyCache builds the in-process cache for state/district/taluka/
// village lists. The hierarchy data changes only with census revisions, so a
// long TTL is safe. Computed distances are never cached.
func NewHierarchyCache() *cache.Cache {
    return cache.New(hierarchyCacheDuration, hierarchyCleanupInterval)
}

// GetCacheKey builds a cache key from a prefix and filter parameters.
func GetCacheKey(prefix string, params ...interface{}) string {
    key := prefix
    for _, param := range params {
        key += ":" + fmt.Sprintf("%v", param)
    }
    return key
}
