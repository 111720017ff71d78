// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecastcache

import (
	"testing"
	"time"

	"github.com/btcsuite/feeforecast/percentile"
	"github.com/stretchr/testify/require"
)

func TestCacheMissWhenEmpty(t *testing.T) {
	c := New(DefaultTTL)

	_, ok := c.Get(1)
	require.False(t, ok)
}

func TestCacheHitAfterUpdate(t *testing.T) {
	c := New(DefaultTTL)

	want := percentile.BlockPercentiles{P5: 100, P25: 200, P50: 300, P75: 400}
	c.Update(map[uint]percentile.BlockPercentiles{1: want})

	got, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, want, got)

	_, ok = c.Get(2)
	require.False(t, ok)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Update(map[uint]percentile.BlockPercentiles{1: {P50: 100}})

	_, ok := c.Get(1)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get(1)
	require.False(t, ok)
}

// TestCacheUpdateReplacesWholeMap checks that Update discards entries from
// the previous map rather than merging into it.
func TestCacheUpdateReplacesWholeMap(t *testing.T) {
	c := New(DefaultTTL)
	c.Update(map[uint]percentile.BlockPercentiles{1: {P50: 100}, 2: {P50: 200}})
	c.Update(map[uint]percentile.BlockPercentiles{1: {P50: 999}})

	got, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(999), got.P50)

	_, ok = c.Get(2)
	require.False(t, ok)
}

func TestCacheDefaultTTL(t *testing.T) {
	c := New(0)
	require.Equal(t, DefaultTTL, c.ttl)
}
