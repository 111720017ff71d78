// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linearize

import (
	"bytes"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/mempoolview"
)

// candidate is one not-yet-included transaction's ancestor-closed package:
// itself plus every still-unincluded ancestor, reachable by walking parent
// edges.
type candidate struct {
	root    chainhash.Hash
	members []chainhash.Hash
	total   feefrac.FeeFrac
}

// Linearize simulates greedy next-block construction over a mempool
// snapshot: it repeatedly selects the not-yet-included, ancestor-closed
// package with the best aggregate feerate, emits it as one chunk, and
// removes its members, until the weight cap is reached, the mempool is
// exhausted, or every remaining package has a negative aggregate fee (and
// is therefore left out of the simulated block entirely).
//
// weightCap is expressed in weight units (vsize already scaled by the
// witness scale factor belongs to the caller, not here); Linearize
// converts each entry's vsize internally so FeeFrac.Size stays in vsize
// units, matching the rest of the forecasting core.
func Linearize(entries []mempoolview.Entry, weightCap int64) Result {
	byID := make(map[chainhash.Hash]mempoolview.Entry, len(entries))
	remaining := make(map[chainhash.Hash]bool, len(entries))
	for _, e := range entries {
		byID[e.TxID] = e
		remaining[e.TxID] = true
	}

	result := Result{InclusionOrder: make(map[chainhash.Hash]int, len(entries))}
	var cumulativeWeight int64

	for len(remaining) > 0 {
		if cumulativeWeight >= weightCap {
			break
		}

		best := bestCandidate(byID, remaining)
		if best == nil || best.total.Fee < 0 {
			// No remaining ancestor-closed package is profitable;
			// everything left stays out of the simulated block.
			break
		}

		chunkIdx := len(result.Chunks)
		for _, id := range best.members {
			delete(remaining, id)
			result.InclusionOrder[id] = chunkIdx
			cumulativeWeight += int64(byID[id].VSize) * witnessScaleFactor
		}
		result.Chunks = append(result.Chunks, Chunk{
			FeeFrac: best.total,
			TxIDs:   best.members,
		})
	}

	return result
}

const witnessScaleFactor = 4

// bestCandidate evaluates every remaining transaction as the root of an
// ancestor-closed package and returns the one with the highest aggregate
// feerate. Ties at equal feerate prefer the larger aggregate size (packing
// more value into the next chunk); remaining ties fall back to
// lexicographically smallest root tx-id, making the choice deterministic.
func bestCandidate(byID map[chainhash.Hash]mempoolview.Entry, remaining map[chainhash.Hash]bool) *candidate {
	var best *candidate
	for id := range remaining {
		members := ancestorClosure(id, byID, remaining)
		total := aggregateFeeFrac(members, byID)
		c := &candidate{root: id, members: members, total: total}

		if best == nil {
			best = c
			continue
		}

		switch {
		case feefrac.FeeRateCompare(c.total, best.total) > 0:
			best = c
		case feefrac.FeeRateCompare(c.total, best.total) < 0:
			// keep best
		case c.total.Size > best.total.Size:
			best = c
		case c.total.Size == best.total.Size && bytes.Compare(c.root[:], best.root[:]) < 0:
			best = c
		}
	}
	return best
}

// ancestorClosure returns id plus every still-remaining ancestor reachable
// via parent edges, in a deterministic ancestor-before-descendant order
// with ties broken lexicographically. A visited set scoped to this single
// call prevents double-counting shared (diamond) ancestors.
func ancestorClosure(id chainhash.Hash, byID map[chainhash.Hash]mempoolview.Entry, remaining map[chainhash.Hash]bool) []chainhash.Hash {
	visited := map[chainhash.Hash]bool{id: true}
	frontier := []chainhash.Hash{id}
	all := map[chainhash.Hash]bool{id: true}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		entry, ok := byID[cur]
		if !ok {
			continue
		}
		parents := append([]chainhash.Hash(nil), entry.Parents...)
		sort.Slice(parents, func(i, j int) bool {
			return bytes.Compare(parents[i][:], parents[j][:]) < 0
		})
		for _, p := range parents {
			if !remaining[p] || visited[p] {
				continue
			}
			visited[p] = true
			all[p] = true
			frontier = append(frontier, p)
		}
	}

	return topoOrder(all, byID)
}

// topoOrder produces a deterministic ancestor-before-descendant ordering
// of the members set (a Kahn's-algorithm topological sort restricted to
// members, with ties broken by tx-id), so that two linearizations of the
// same chunk membership always list transactions in the same order.
func topoOrder(members map[chainhash.Hash]bool, byID map[chainhash.Hash]mempoolview.Entry) []chainhash.Hash {
	inDegree := make(map[chainhash.Hash]int, len(members))
	children := make(map[chainhash.Hash][]chainhash.Hash, len(members))
	for id := range members {
		inDegree[id] = 0
	}
	for id := range members {
		for _, p := range byID[id].Parents {
			if !members[p] {
				continue
			}
			inDegree[id]++
			children[p] = append(children[p], id)
		}
	}

	var ready []chainhash.Hash
	for id := range members {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return bytes.Compare(ready[i][:], ready[j][:]) < 0 })

	out := make([]chainhash.Hash, 0, len(members))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		out = append(out, id)

		kids := append([]chainhash.Hash(nil), children[id]...)
		sort.Slice(kids, func(i, j int) bool { return bytes.Compare(kids[i][:], kids[j][:]) < 0 })
		for _, kid := range kids {
			inDegree[kid]--
			if inDegree[kid] == 0 {
				insertSorted(&ready, kid)
			}
		}
	}

	return out
}

// insertSorted inserts id into a lexicographically sorted slice, keeping
// it sorted.
func insertSorted(s *[]chainhash.Hash, id chainhash.Hash) {
	i := sort.Search(len(*s), func(i int) bool {
		return bytes.Compare((*s)[i][:], id[:]) >= 0
	})
	*s = append(*s, chainhash.Hash{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = id
}

// aggregateFeeFrac sums the fee and vsize of every member transaction.
func aggregateFeeFrac(members []chainhash.Hash, byID map[chainhash.Hash]mempoolview.Entry) feefrac.FeeFrac {
	var total feefrac.FeeFrac
	for _, id := range members {
		e := byID[id]
		total = total.Add(feefrac.New(e.Fee, e.VSize))
	}
	return total
}
