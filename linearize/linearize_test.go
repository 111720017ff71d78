// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linearize

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/stretchr/testify/require"
)

func hashOf(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

// TestLinearizeNoParentsOrderedByFeerate checks that with no parent edges
// at all, chunks come out strictly ordered by descending feerate, one
// transaction per chunk.
func TestLinearizeNoParentsOrderedByFeerate(t *testing.T) {
	entries := []mempoolview.Entry{
		{TxID: hashOf(1), Fee: 100, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: hashOf(2), Fee: 500, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: hashOf(3), Fee: 300, VSize: 100, Arrival: time.Unix(0, 0)},
	}

	result := Linearize(entries, 1_000_000_000)
	require.Len(t, result.Chunks, 3)
	require.Equal(t, []chainhash.Hash{hashOf(2)}, result.Chunks[0].TxIDs)
	require.Equal(t, []chainhash.Hash{hashOf(3)}, result.Chunks[1].TxIDs)
	require.Equal(t, []chainhash.Hash{hashOf(1)}, result.Chunks[2].TxIDs)
}

// TestLinearizeAncestorClosure verifies that a low-fee parent is pulled
// into the same chunk as its high-fee child, and that the chunk's
// aggregate feerate reflects both.
func TestLinearizeAncestorClosure(t *testing.T) {
	parent := hashOf(1)
	child := hashOf(2)
	other := hashOf(3)

	entries := []mempoolview.Entry{
		{TxID: parent, Fee: 0, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: child, Fee: 1000, VSize: 100, Parents: []chainhash.Hash{parent}, Arrival: time.Unix(0, 0)},
		{TxID: other, Fee: 200, VSize: 100, Arrival: time.Unix(0, 0)},
	}

	result := Linearize(entries, 1_000_000_000)
	require.Len(t, result.Chunks, 2)

	first := result.Chunks[0]
	require.ElementsMatch(t, []chainhash.Hash{parent, child}, first.TxIDs)
	require.Equal(t, int64(1000), first.FeeFrac.Fee)
	require.Equal(t, int32(200), first.FeeFrac.Size)

	// Parent must precede child within the chunk.
	require.Equal(t, parent, first.TxIDs[0])
	require.Equal(t, child, first.TxIDs[1])

	require.Equal(t, []chainhash.Hash{other}, result.Chunks[1].TxIDs)
}

// TestLinearizeDiamond checks that a shared grandparent is not
// double-counted when two children both depend on it.
func TestLinearizeDiamond(t *testing.T) {
	grandparent := hashOf(1)
	parentA := hashOf(2)
	parentB := hashOf(3)
	child := hashOf(4)

	entries := []mempoolview.Entry{
		{TxID: grandparent, Fee: 100, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: parentA, Fee: 100, VSize: 100, Parents: []chainhash.Hash{grandparent}, Arrival: time.Unix(0, 0)},
		{TxID: parentB, Fee: 100, VSize: 100, Parents: []chainhash.Hash{grandparent}, Arrival: time.Unix(0, 0)},
		{TxID: child, Fee: 100, VSize: 100, Parents: []chainhash.Hash{parentA, parentB}, Arrival: time.Unix(0, 0)},
	}

	result := Linearize(entries, 1_000_000_000)
	require.Len(t, result.Chunks, 1)
	require.Len(t, result.Chunks[0].TxIDs, 4)
	require.Equal(t, int64(400), result.Chunks[0].FeeFrac.Fee)
	require.Equal(t, int32(400), result.Chunks[0].FeeFrac.Size)
}

// TestLinearizeExcludesUnprofitable checks that a negative-fee transaction
// with no fee-paying descendant is left out of every chunk.
func TestLinearizeExcludesUnprofitable(t *testing.T) {
	stuck := hashOf(1)
	profitable := hashOf(2)

	entries := []mempoolview.Entry{
		{TxID: stuck, Fee: -50, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: profitable, Fee: 500, VSize: 100, Arrival: time.Unix(0, 0)},
	}

	result := Linearize(entries, 1_000_000_000)
	require.Len(t, result.Chunks, 1)
	require.Equal(t, []chainhash.Hash{profitable}, result.Chunks[0].TxIDs)
	_, included := result.InclusionOrder[stuck]
	require.False(t, included)
}

// TestLinearizeWeightCap checks that the weight cap stops chunk selection
// even though transactions remain.
func TestLinearizeWeightCap(t *testing.T) {
	entries := []mempoolview.Entry{
		{TxID: hashOf(1), Fee: 1000, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: hashOf(2), Fee: 900, VSize: 100, Arrival: time.Unix(0, 0)},
	}

	// Weight cap of 400 allows only the first chunk's weight (100*4=400).
	result := Linearize(entries, 400)
	require.Len(t, result.Chunks, 1)
	require.Equal(t, []chainhash.Hash{hashOf(1)}, result.Chunks[0].TxIDs)
}

// TestLinearizeDeterministic checks that two calls over the same input in
// different slice order produce identical results.
func TestLinearizeDeterministic(t *testing.T) {
	entries := []mempoolview.Entry{
		{TxID: hashOf(1), Fee: 100, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: hashOf(2), Fee: 100, VSize: 100, Arrival: time.Unix(0, 0)},
		{TxID: hashOf(3), Fee: 100, VSize: 100, Arrival: time.Unix(0, 0)},
	}
	reversed := []mempoolview.Entry{entries[2], entries[1], entries[0]}

	r1 := Linearize(entries, 1_000_000_000)
	r2 := Linearize(reversed, 1_000_000_000)
	require.Equal(t, r1, r2)
}

// TestLinearizeChunkFeerateNonIncreasing checks the non-increasing chunk
// feerate property across a slightly larger randomized mempool.
func TestLinearizeChunkFeerateNonIncreasing(t *testing.T) {
	entries := make([]mempoolview.Entry, 0, 20)
	for i := byte(1); i <= 20; i++ {
		entries = append(entries, mempoolview.Entry{
			TxID:    hashOf(i),
			Fee:     int64(i) * 37 % 500,
			VSize:   100,
			Arrival: time.Unix(0, 0),
		})
	}

	result := Linearize(entries, 1_000_000_000)
	for i := 1; i < len(result.Chunks); i++ {
		prev := result.Chunks[i-1].FeeFrac
		cur := result.Chunks[i].FeeFrac
		require.False(t, prev.StrictFeeRateLess(cur),
			"chunk %d feerate should not exceed chunk %d", i, i-1)
	}
}

func TestSharedCache(t *testing.T) {
	cache := NewSharedCache()

	_, ok := cache.Get(1)
	require.False(t, ok)

	want := Result{InclusionOrder: map[chainhash.Hash]int{hashOf(1): 0}}
	cache.Put(1, want)

	got, ok := cache.Get(1)
	require.True(t, ok)
	require.Equal(t, want, got)

	_, ok = cache.Get(2)
	require.False(t, ok)
}
