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

// BlockForecaster maintains a FIFO of the last MaxNumberOfBlocks blocks'
// percentiles and reports their arithmetic mean, smoothing out the noise a
// single block's LastBlockForecaster estimate can carry.
type BlockForecaster struct {
	mu    sync.RWMutex
	queue []percentile.BlockPercentiles
}

// NewBlockForecaster returns a BlockForecaster with an empty window.
func NewBlockForecaster() *BlockForecaster {
	return &BlockForecaster{}
}

// Name implements Forecaster.
func (f *BlockForecaster) Name() string { return "block-average" }

// MaxTarget implements Forecaster.
func (f *BlockForecaster) MaxTarget() uint32 { return BlockForecastMaxTarget }

// OnBlockConnected linearizes the block's removed set, and on a sufficient
// sample pushes its percentiles onto the window, evicting the oldest entry
// once the window is full.
func (f *BlockForecaster) OnBlockConnected(event mempoolview.BlockConnectedEvent) {
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
	f.queue = append(f.queue, pct)
	if len(f.queue) > MaxNumberOfBlocks {
		f.queue = f.queue[len(f.queue)-MaxNumberOfBlocks:]
	}
}

// Estimate implements Forecaster.
func (f *BlockForecaster) Estimate(target uint32) ForecastResult {
	if target == 0 || target > f.MaxTarget() {
		return errorResult(f.Name(), 0, errTargetOutOfRange)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.queue) < MaxNumberOfBlocks {
		return errorResult(f.Name(), 0, errInsufficientData)
	}

	var p25, p50 int64
	for _, pct := range f.queue {
		p25 += pct.P25
		p50 += pct.P50
	}
	n := int64(len(f.queue))

	return ForecastResult{
		ForecasterName: f.Name(),
		LowPriority:    p25 / n,
		HighPriority:   p50 / n,
	}
}
