// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecastcache

import (
	"sync"
	"time"

	"github.com/btcsuite/feeforecast/percentile"
)

// DefaultTTL is the default time a cached map of estimates remains fresh.
const DefaultTTL = 30 * time.Second

// Cache holds the most recently computed fee estimate for each horizon, a
// small unsigned integer identifying a confirmation target or time window
// depending on the forecaster. Updates always replace the entire map; there
// is no partial merge. Readers take a shared lock, so concurrent Get calls
// never block one another, only a concurrent Update.
//
// A Cache must always be used through a pointer obtained from New; copying
// a Cache value would duplicate its mutex and defeat the sharing it exists
// for.
type Cache struct {
	mu          sync.RWMutex
	ttl         time.Duration
	entries     map[uint]percentile.BlockPercentiles
	lastUpdated time.Time
}

// New returns an empty Cache with the given time-to-live. A ttl of zero
// uses DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl}
}

// Get returns the estimate for horizon if the cache holds one and it has
// not gone stale.
func (c *Cache) Get(horizon uint) (percentile.BlockPercentiles, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entries == nil || time.Since(c.lastUpdated) > c.ttl {
		return percentile.BlockPercentiles{}, false
	}
	v, ok := c.entries[horizon]
	return v, ok
}

// Update atomically replaces the cached map and resets the freshness clock.
func (c *Cache) Update(m map[uint]percentile.BlockPercentiles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = m
	c.lastUpdated = time.Now()
}
