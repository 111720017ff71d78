// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package insync

import "sync"

// BlockInfo is one slot of the gate's ring: a block height and whether that
// block's contents lined up closely enough with this node's own mempool and
// expected template.
type BlockInfo struct {
	Height        uint32
	RoughlySynced bool
	present       bool
}

// ringSize is the number of trailing blocks the gate tracks.
const ringSize = 3

// Gate tracks the roughly-synced status of the last few connected blocks in
// a small ring. Forecasters that assume recent miner alignment consult
// RoughlySynced before trusting their own output.
type Gate struct {
	mu   sync.RWMutex
	ring [ringSize]BlockInfo
}

// New returns an empty Gate.
func New() *Gate {
	return &Gate{}
}

// Observe records a newly connected block's height and roughly-synced
// status, following the ring's insertion rules: if the ring is already
// consecutive and height continues that run, the new slot is appended
// (rotating out the oldest slot if the ring is full); otherwise the ring is
// reset to hold only the new block.
func (g *Gate) Observe(height uint32, roughlySynced bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := BlockInfo{Height: height, RoughlySynced: roughlySynced, present: true}

	if g.canAppendLocked(height) {
		if g.ring[ringSize-1].present {
			for i := 0; i < ringSize-1; i++ {
				g.ring[i] = g.ring[i+1]
			}
			g.ring[ringSize-1] = next
			return
		}
		for i := 0; i < ringSize; i++ {
			if !g.ring[i].present {
				g.ring[i] = next
				return
			}
		}
		return
	}

	g.ring = [ringSize]BlockInfo{next}
}

// canAppendLocked reports whether a block at height continues the ring's
// existing consecutive run. An empty ring always accepts.
func (g *Gate) canAppendLocked(height uint32) bool {
	if !g.areInOrderLocked() {
		return false
	}
	last, ok := g.lastLocked()
	if !ok {
		return true
	}
	return height == last.Height+1
}

// areInOrderLocked reports whether every present slot's height is exactly
// one greater than its predecessor's.
func (g *Gate) areInOrderLocked() bool {
	prev := -1
	for i := 0; i < ringSize; i++ {
		if !g.ring[i].present {
			continue
		}
		h := int64(g.ring[i].Height)
		if prev >= 0 && h != int64(prev)+1 {
			return false
		}
		prev = int(h)
	}
	return true
}

// lastLocked returns the highest-height present slot, if any.
func (g *Gate) lastLocked() (BlockInfo, bool) {
	for i := ringSize - 1; i >= 0; i-- {
		if g.ring[i].present {
			return g.ring[i], true
		}
	}
	return BlockInfo{}, false
}

// RoughlySynced reports whether the ring holds three full, consecutive
// slots, each marking its block as roughly synced.
func (g *Gate) RoughlySynced() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := 0; i < ringSize; i++ {
		if !g.ring[i].present || !g.ring[i].RoughlySynced {
			return false
		}
	}
	return g.areInOrderLocked()
}

// BlockHeights returns the heights currently held in the ring, oldest
// first, for debugging and introspection. It does not indicate whether
// those heights are roughly synced.
func (g *Gate) BlockHeights() []uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]uint32, 0, ringSize)
	for i := 0; i < ringSize; i++ {
		if g.ring[i].present {
			out = append(out, g.ring[i].Height)
		}
	}
	return out
}
