// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"time"

	"github.com/btcsuite/feeforecast/forecastcache"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/btcsuite/feeforecast/percentile"
)

// recentWindow is the lookback MempoolLast10MinForecaster uses to decide
// which transactions count twice.
const recentWindow = 10 * time.Minute

// MempoolLast10MinForecaster runs the same pipeline as MempoolForecaster,
// but every transaction that arrived within the last ten minutes counts
// twice in the percentile sweep, biasing the estimate toward recent fee
// bursts.
type MempoolLast10MinForecaster struct {
	snapshot  mempoolview.Snapshot
	chain     mempoolview.Chainstate
	linCache  *linearize.SharedCache
	gate      syncChecker
	cache     *forecastcache.Cache
	weightCap int64
	now       func() time.Time
}

// NewMempoolLast10MinForecaster returns a MempoolLast10MinForecaster
// sharing linCache with MempoolForecaster over the same mempool snapshots.
// gate, if non-nil, gates Estimate on RoughlySynced(); pass nil to skip the
// check.
func NewMempoolLast10MinForecaster(
	snapshot mempoolview.Snapshot,
	chain mempoolview.Chainstate,
	linCache *linearize.SharedCache,
	gate syncChecker,
	weightCap int64,
) *MempoolLast10MinForecaster {
	if weightCap <= 0 {
		weightCap = percentile.DefaultBlockMaxWeight
	}
	return &MempoolLast10MinForecaster{
		snapshot:  snapshot,
		chain:     chain,
		linCache:  linCache,
		gate:      gate,
		cache:     forecastcache.New(forecastcache.DefaultTTL),
		weightCap: weightCap,
		now:       time.Now,
	}
}

// Name implements Forecaster.
func (f *MempoolLast10MinForecaster) Name() string { return "mempool-10min" }

// MaxTarget implements Forecaster.
func (f *MempoolLast10MinForecaster) MaxTarget() uint32 {
	return MempoolLast10MinForecastMaxTarget
}

// Estimate implements Forecaster.
func (f *MempoolLast10MinForecaster) Estimate(target uint32) ForecastResult {
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

	gen := uint64(height)
	var result linearize.Result
	if f.linCache != nil {
		if cached, ok := f.linCache.Get(gen); ok {
			result = cached
		} else {
			result = linearize.Linearize(entries, f.weightCap)
			f.linCache.Put(gen, result)
		}
	} else {
		result = linearize.Linearize(entries, f.weightCap)
	}

	byID := indexEntries(entries)
	samples := samplesWithRecentDoubled(result, byID, f.now(), recentWindow)
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
