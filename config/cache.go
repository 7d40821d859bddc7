package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Cache durations
	districtCacheDuration   = 24 * time.Hour
	comparisonCacheDuration = 1 * time.Hour

	// Cleanup intervals
	districtCleanupInterval   = 48 * time.Hour
	comparisonCleanupInterval = 2 * time.Hour
)

// Caches bundles the in-process caches. District reference data changes only
// at seed time so it can live for a day; comparison aggregates follow the
// reporting month and expire hourly.
type Caches struct {
	Districts   *cache.Cache
	Comparisons *cache.Cache
}

func NewCaches() *Caches {
	return &Caches{
		Districts:   cache.New(districtCacheDuration, districtCleanupInterval),
		Comparisons: cache.New(comparisonCacheDuration, comparisonCleanupInterval),
	}
}

func (c *Caches) Flush() {
	c.Districts.Flush()
	c.Comparisons.Flush()
}

// CacheKey joins a prefix and parameters into a stable cache key.
func CacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
