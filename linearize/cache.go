// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linearize

import "sync"

// SharedCache memoizes the most recent next-block linearization so that
// two forecasters querying the same mempool generation don't pay to
// linearize it twice. The generation stamp is caller-supplied (typically a
// mempool sequence number or chain tip height) and opaque to SharedCache;
// a Get only hits when the stamp matches exactly.
type SharedCache struct {
	mu    sync.Mutex
	gen   uint64
	valid bool
	value Result
}

// NewSharedCache returns an empty SharedCache.
func NewSharedCache() *SharedCache {
	return &SharedCache{}
}

// Get returns the memoized Result for gen, if any.
func (c *SharedCache) Get(gen uint64) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.gen != gen {
		return Result{}, false
	}
	return c.value, true
}

// Put stores value as the linearization for gen, replacing whatever was
// memoized before.
func (c *SharedCache) Put(gen uint64, value Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen = gen
	c.value = value
	c.valid = true
}
