// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/btcsuite/feeforecast/percentile"
)

// indexEntries builds a lookup from transaction id to entry, the form
// linearize.Result.Samples and the per-transaction arrival lookups below
// need.
func indexEntries(entries []mempoolview.Entry) map[chainhash.Hash]mempoolview.Entry {
	byID := make(map[chainhash.Hash]mempoolview.Entry, len(entries))
	for _, e := range entries {
		byID[e.TxID] = e
	}
	return byID
}

// toSamples converts a flat list of per-transaction FeeFracs, in linearized
// order, into percentile samples with no doubling.
func toSamples(fracs []feefrac.FeeFrac) []percentile.Sample {
	out := make([]percentile.Sample, len(fracs))
	for i, f := range fracs {
		out[i] = percentile.Sample{FeeFrac: f}
	}
	return out
}

// samplesWithRecentDoubled flattens a linearization into percentile samples,
// marking every transaction that arrived within window of now as Doubled.
func samplesWithRecentDoubled(
	result linearize.Result,
	byID map[chainhash.Hash]mempoolview.Entry,
	now time.Time,
	window time.Duration,
) []percentile.Sample {
	out := make([]percentile.Sample, 0, len(result.InclusionOrder))
	for _, chunk := range result.Chunks {
		for _, txid := range chunk.TxIDs {
			e, ok := byID[txid]
			if !ok {
				continue
			}
			out = append(out, percentile.Sample{
				FeeFrac: chunk.FeeFrac.ForSize(e.VSize),
				Doubled: now.Sub(e.Arrival) <= window,
			})
		}
	}
	return out
}

// totalEntryWeight sums the weight of every entry, in weight units (vsize
// scaled by the witness scale factor). LastBlockForecaster and
// BlockForecaster size their percentile engine to the block's own weight
// rather than the production block weight cap, since a connected block is
// always a complete, closed linearization regardless of its actual size.
func totalEntryWeight(entries []mempoolview.Entry) int64 {
	var total int64
	for _, e := range entries {
		total += int64(e.VSize) * percentile.WitnessScaleFactor
	}
	return total
}
