// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package percentile

import (
	"testing"

	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/stretchr/testify/require"
)

// uniformSamples builds n samples of identical fee rate fee/vsize.
func uniformSamples(n int, fee int64, vsize int32) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{FeeFrac: feefrac.New(fee, vsize)}
	}
	return out
}

// TestUniformMempoolPercentiles exercises the documented scenario: 400
// unlinked transactions each paying 1000 sat over 250 vB (4000 sat/kvB),
// fed through an engine sized so the sample fills the simulated block,
// should report every percentile at the same uniform rate.
func TestUniformMempoolPercentiles(t *testing.T) {
	samples := uniformSamples(400, 1000, 250)

	// Total weight = 400 * 250 * 4 = 400,000; size the engine's cap to
	// exactly that so the sample is judged sufficient.
	engine := NewEngine(400_000)
	got := engine.Compute(samples)

	want := BlockPercentiles{P5: 4000, P25: 4000, P50: 4000, P75: 4000}
	require.Equal(t, want, got)
}

// TestInsufficientSample checks that a sample too small relative to the
// configured block weight cap reports empty percentiles.
func TestInsufficientSample(t *testing.T) {
	samples := uniformSamples(400, 1000, 250)

	engine := NewEngine(DefaultBlockMaxWeight)
	got := engine.Compute(samples)

	require.True(t, got.IsEmpty())
}

func TestEmptySample(t *testing.T) {
	engine := NewEngine(0)
	got := engine.Compute(nil)
	require.True(t, got.IsEmpty())
}

// TestPercentilesNonDecreasing builds a ramp of descending fee rates, as a
// linearizer would emit them, and checks p5<=p25<=p50<=p75.
func TestPercentilesNonDecreasing(t *testing.T) {
	var samples []Sample
	for rate := int64(1000); rate >= 1; rate-- {
		samples = append(samples, Sample{FeeFrac: feefrac.New(rate, 1000)})
	}

	engine := NewEngine(int64(len(samples)) * 1000 * WitnessScaleFactor)
	got := engine.Compute(samples)

	require.False(t, got.IsEmpty())
	require.LessOrEqual(t, got.P5, got.P25)
	require.LessOrEqual(t, got.P25, got.P50)
	require.LessOrEqual(t, got.P50, got.P75)
}

// TestSingleCrossing checks that a single quantile crossing lands exactly
// on the fee rate in effect at that point. Each sample has vsize 1000, so
// its fee rate in sat/kvB equals its raw fee, keeping the arithmetic easy
// to follow. Samples are given in best-first (descending feerate) order,
// matching the linearizer's own output; the engine sweeps them from the
// worst end first.
func TestSingleCrossing(t *testing.T) {
	samples := []Sample{
		{FeeFrac: feefrac.New(500, 1000)},
		{FeeFrac: feefrac.New(400, 1000)},
		{FeeFrac: feefrac.New(300, 1000)}, // weight 4000, swept first
	}
	engine := NewEngine(10_000) // T5=500 T25=2500 T50=5000 T75=7500

	got := engine.Compute(samples)
	require.Equal(t, int64(300), got.P5)
	require.Equal(t, int64(300), got.P25)
	require.Equal(t, int64(400), got.P50)
	require.Equal(t, int64(400), got.P75)
}

// TestDoubledSample checks that a sample marked Doubled counts twice in
// both weight accumulation and the emitted rate stream, pulling the
// quantile crossings it affects toward its own rate. Samples are in
// best-first order; the engine sweeps from the tail, so the second (lower
// fee) entry in each slice is swept first.
func TestDoubledSample(t *testing.T) {
	plain := []Sample{
		{FeeFrac: feefrac.New(900, 1000)},
		{FeeFrac: feefrac.New(100, 1000)}, // weight 4000, swept first
	}
	doubled := []Sample{
		{FeeFrac: feefrac.New(900, 1000)},
		{FeeFrac: feefrac.New(100, 1000), Doubled: true}, // counts as weight 8000, swept first
	}

	engine := NewEngine(8_000) // T5=400 T25=2000 T50=4000 T75=6000

	plainResult := engine.Compute(plain)
	require.Equal(t, int64(100), plainResult.P50)
	require.Equal(t, int64(900), plainResult.P75)

	// Doubling the low sample's weight means it alone satisfies every
	// threshold, pulling every percentile down to the doubled rate where
	// the plain run needed the high sample to reach p75.
	doubledResult := engine.Compute(doubled)
	require.Equal(t, int64(100), doubledResult.P5)
	require.Equal(t, int64(100), doubledResult.P50)
	require.Equal(t, int64(100), doubledResult.P75)
}
