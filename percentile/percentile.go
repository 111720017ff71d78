// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package percentile

import "github.com/btcsuite/feeforecast/feefrac"

// WitnessScaleFactor relates virtual size to weight: weight = vsize *
// WitnessScaleFactor.
const WitnessScaleFactor = 4

// DefaultBlockMaxWeight is the default block weight cap, in weight units.
const DefaultBlockMaxWeight = 4_000_000

// BlockPercentiles holds the 5th, 25th, 50th and 75th percentile fee
// rates of a simulated block, expressed in satoshis per kilo-virtual-byte.
// The zero value is the canonical "empty" result.
type BlockPercentiles struct {
	P5, P25, P50, P75 int64
}

// IsEmpty reports whether every percentile is zero.
func (b BlockPercentiles) IsEmpty() bool {
	return b.P5 == 0 && b.P25 == 0 && b.P50 == 0 && b.P75 == 0
}

// Sample is one transaction's fee rate and virtual size, as produced by a
// linearizer in best-first order (the forecasters use the rate of the chunk
// the transaction landed in, resized to the transaction's own vsize).
type Sample struct {
	FeeFrac feefrac.FeeFrac
	// Doubled, when true, counts this sample's weight and presence in
	// the output stream twice. It exists for forecasters (such as the
	// 10-minute mempool forecaster) that intentionally bias the
	// estimate toward a subset of recent transactions.
	Doubled bool
}

// Engine computes BlockPercentiles over a weight-weighted sweep of
// best-first samples. W is the block weight cap used to derive the four
// quantile thresholds; it defaults to DefaultBlockMaxWeight when zero.
type Engine struct {
	W int64
}

// NewEngine returns an Engine with the given block weight cap. A cap of
// zero uses DefaultBlockMaxWeight.
func NewEngine(w int64) Engine {
	if w <= 0 {
		w = DefaultBlockMaxWeight
	}
	return Engine{W: w}
}

// Compute sweeps samples from the worst-feerate end of the linearization
// toward the best, accumulating weight and recording the fee rate in
// effect the first time cumulative weight crosses each quantile
// threshold. Samples arrive in best-first linearized order (the
// linearizer's own order); sweeping from the tail means p5 lands near the
// bottom of the fee distribution and p75 near the top, matching the
// documented p5 <= p25 <= p50 <= p75 invariant. It returns an empty
// BlockPercentiles if cumulative weight never reaches half the block
// weight cap.
func (e Engine) Compute(samples []Sample) BlockPercentiles {
	w := e.W
	if w <= 0 {
		w = DefaultBlockMaxWeight
	}

	t5 := w / 20
	t25 := w / 4
	t50 := w / 2
	t75 := (3 * w) / 4

	var result BlockPercentiles
	var total int64
	var gotP5, gotP25, gotP50, gotP75 bool

	record := func(weight int64, feeRate int64) {
		total += weight
		if !gotP5 && total >= t5 {
			result.P5 = feeRate
			gotP5 = true
		}
		if !gotP25 && total >= t25 {
			result.P25 = feeRate
			gotP25 = true
		}
		if !gotP50 && total >= t50 {
			result.P50 = feeRate
			gotP50 = true
		}
		if !gotP75 && total >= t75 {
			result.P75 = feeRate
			gotP75 = true
		}
	}

	for i := len(samples) - 1; i >= 0; i-- {
		s := samples[i]
		weight := int64(s.FeeFrac.Size) * WitnessScaleFactor
		rate := feeRatePerKvB(s.FeeFrac)

		record(weight, rate)
		if s.Doubled {
			record(weight, rate)
		}
	}

	if total < t50 {
		return BlockPercentiles{}
	}
	return result
}

// feeRatePerKvB converts a FeeFrac's fee/size ratio to satoshis per
// kilo-virtual-byte. size is in vsize (vbytes), so fee/size is sat/vB;
// multiplying by 1000 gives sat/kvB.
func feeRatePerKvB(f feefrac.FeeFrac) int64 {
	if f.Size == 0 {
		return 0
	}
	return (f.Fee * 1000) / int64(f.Size)
}
