// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linearize

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/mempoolview"
)

// Chunk is one ancestor-closed group of transactions selected together
// during linearization, along with its aggregate FeeFrac.
type Chunk struct {
	FeeFrac feefrac.FeeFrac
	TxIDs   []chainhash.Hash
}

// Result is the output of a linearization pass: the ordered chunks (best
// feerate first) and a lookup from transaction id to the index of the
// chunk it landed in.
type Result struct {
	Chunks         []Chunk
	InclusionOrder map[chainhash.Hash]int
}

// Samples flattens the result into a list of per-transaction FeeFracs in
// linearized order, each one carrying its chunk's aggregate mining score
// (the effective feerate the transaction contributes when packaged with
// its ancestors) resized to the transaction's own vsize, suitable for
// feeding a percentile engine. Transactions within a chunk are emitted in
// the chunk's internal order, which is itself deterministic
// (ancestor-before-descendant, then lexicographic tx-id).
func (r Result) Samples(byID map[chainhash.Hash]mempoolview.Entry) []feefrac.FeeFrac {
	out := make([]feefrac.FeeFrac, 0, len(r.InclusionOrder))
	for _, chunk := range r.Chunks {
		for _, txid := range chunk.TxIDs {
			if e, ok := byID[txid]; ok {
				out = append(out, chunk.FeeFrac.ForSize(e.VSize))
			}
		}
	}
	return out
}
