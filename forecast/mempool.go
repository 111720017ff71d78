// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/feeforecast/forecastcache"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/btcsuite/feeforecast/percentile"
)

// MempoolForecaster estimates the fee rate needed to confirm within the
// very next block by linearizing the current mempool and taking its
// percentiles. Results are cached for forecastcache.DefaultTTL so that
// repeated RPC calls during a quiet mempool don't pay to relinearize.
type MempoolForecaster struct {
	snapshot  mempoolview.Snapshot
	chain     mempoolview.Chainstate
	linCache  *linearize.SharedCache
	gate      syncChecker
	cache     *forecastcache.Cache
	weightCap int64
}

// NewMempoolForecaster returns a MempoolForecaster reading from snapshot
// and chain, sharing linCache with any sibling forecaster that also
// linearizes the current mempool (MempoolLast10MinForecaster). gate, if
// non-nil, gates Estimate on RoughlySynced(); pass nil to skip the check.
// weightCap of zero uses percentile.DefaultBlockMaxWeight.
func NewMempoolForecaster(
	snapshot mempoolview.Snapshot,
	chain mempoolview.Chainstate,
	linCache *linearize.SharedCache,
	gate syncChecker,
	weightCap int64,
) *MempoolForecaster {
	if weightCap <= 0 {
		weightCap = percentile.DefaultBlockMaxWeight
	}
	return &MempoolForecaster{
		snapshot:  snapshot,
		chain:     chain,
		linCache:  linCache,
		gate:      gate,
		cache:     forecastcache.New(forecastcache.DefaultTTL),
		weightCap: weightCap,
	}
}

// Name implements Forecaster.
func (f *MempoolForecaster) Name() string { return "mempool" }

// MaxTarget implements Forecaster.
func (f *MempoolForecaster) MaxTarget() uint32 { return MaxConfTarget }

// Estimate implements Forecaster.
func (f *MempoolForecaster) Estimate(target uint32) ForecastResult {
	height := f.chain.ActiveTipHeight()

	if target == 0 || target > f.MaxTarget() {
		return errorResult(f.Name(), height, errTargetOutOfRange)
	}
	if !f.snapshot.LoadTried() {
		return errorResult(f.Name(), height, errMempoolNotLoaded)
	}
	if f.gate != nil && !f.gate.RoughlySynced() {
		return errorResult(f.Name(), height, errNotInSync)
	}

	if cached, ok := f.cache.Get(uint(target)); ok {
		return ForecastResult{
			ForecasterName: f.Name(),
			BlockHeight:    height,
			LowPriority:    cached.P25,
			HighPriority:   cached.P50,
		}
	}

	entries := f.snapshot.Entries()
	if len(entries) == 0 {
		return errorResult(f.Name(), height, errEmptyMempool)
	}

	result := f.linearize(entries, uint64(height))
	byID := indexEntries(entries)
	samples := toSamples(result.Samples(byID))
	pct := percentile.NewEngine(f.weightCap).Compute(samples)

	if pct.IsEmpty() || pct.P75 == 0 {
		return errorResult(f.Name(), height, errInsufficientSample)
	}

	f.cache.Update(map[uint]percentile.BlockPercentiles{uint(target): pct})

	return ForecastResult{
		ForecasterName: f.Name(),
		BlockHeight:    height,
		LowPriority:    pct.P25,
		HighPriority:   pct.P50,
	}
}

// linearize returns the linearization of entries, consulting and populating
// the shared cache under gen so a sibling forecaster querying the same
// mempool generation doesn't pay to linearize twice.
func (f *MempoolForecaster) linearize(entries []mempoolview.Entry, gen uint64) linearize.Result {
	if f.linCache != nil {
		if result, ok := f.linCache.Get(gen); ok {
			return result
		}
	}
	result := linearize.Linearize(entries, f.weightCap)
	if f.linCache != nil {
		f.linCache.Put(gen, result)
	}
	return result
}
