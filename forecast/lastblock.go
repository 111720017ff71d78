// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"sync"

	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/btcsuite/feeforecast/percentile"
)

// LastBlockForecaster reports the percentiles of the most recently
// connected block. A connected block is itself a complete, closed
// linearization (every transaction it contains, in its actual mined
// order), so the percentile engine is sized to the block's own weight
// rather than the production block weight cap.
type LastBlockForecaster struct {
	mu         sync.RWMutex
	last       percentile.BlockPercentiles
	lastHeight uint32
	have       bool
}

// NewLastBlockForecaster returns a LastBlockForecaster with no block
// observed yet.
func NewLastBlockForecaster() *LastBlockForecaster {
	return &LastBlockForecaster{}
}

// Name implements Forecaster.
func (f *LastBlockForecaster) Name() string { return "last-block" }

// MaxTarget implements Forecaster.
func (f *LastBlockForecaster) MaxTarget() uint32 { return LastBlockForecastMaxTarget }

// OnBlockConnected linearizes the block's removed-from-mempool set and
// replaces the stored percentiles. If the block's sample is insufficient
// the previously stored value is left unchanged.
func (f *LastBlockForecaster) OnBlockConnected(event mempoolview.BlockConnectedEvent) {
	weightCap := totalEntryWeight(event.Removed)
	result := linearize.Linearize(event.Removed, weightCap)
	byID := indexEntries(event.Removed)
	samples := toSamples(result.Samples(byID))
	pct := percentile.NewEngine(weightCap).Compute(samples)

	if pct.IsEmpty() {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = pct
	f.lastHeight = event.Height
	f.have = true
}

// Estimate implements Forecaster.
func (f *LastBlockForecaster) Estimate(target uint32) ForecastResult {
	if target == 0 || target > f.MaxTarget() {
		return errorResult(f.Name(), 0, errTargetOutOfRange)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.have {
		return errorResult(f.Name(), 0, errInsufficientSample)
	}
	return ForecastResult{
		ForecasterName: f.Name(),
		BlockHeight:    f.lastHeight,
		LowPriority:    f.last.P25,
		HighPriority:   f.last.P50,
	}
}
