// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"math"
	"sync"
	"time"

	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/btcsuite/feeforecast/percentile"
	"github.com/decred/dcrd/lru"
)

// defaultSeenCacheSize bounds the number of transaction ids NTimeForecaster
// remembers having already recorded, so a replayed block does not record the
// same transaction twice. It does not bound the tracking grid itself: grid
// rows are only dropped by UpdateTrackingStats once they age past MaxHours.
const defaultSeenCacheSize = 200_000

// ConfirmedTx is one transaction's recorded arrival-to-confirmation
// outcome: its mining score (the effective fee rate it contributed when
// packaged with its ancestors, in sat/kvB) and its own virtual size.
type ConfirmedTx struct {
	Arrival      time.Time
	Confirmation time.Time
	FeeRate      int64
	VSize        int32
}

// feeFrac reconstructs a synthetic FeeFrac carrying this entry's own vsize
// at its recorded mining score, for feeding the percentile engine.
func (c ConfirmedTx) feeFrac() feefrac.FeeFrac {
	fee := c.FeeRate * int64(c.VSize) / 1000
	return feefrac.New(fee, c.VSize)
}

// cellKey addresses one cell of the tracking grid: i is hours since arrival
// (it starts at the arrival-to-confirmation delay index and grows by one on
// every hourly shift), j is the arrival-to-confirmation delay in hours,
// fixed at write time.
type cellKey struct {
	I, J int
}

// NTimeForecaster tracks, for every mined transaction, how many hours
// elapsed between its mempool arrival and its confirmation, bucketed into an
// hour-aged grid. estimate(hours) reports the more conservative of a
// window covering the last `hours` hours and a historical window shifted
// back by one day.
type NTimeForecaster struct {
	mu    sync.RWMutex
	cells map[cellKey][]ConfirmedTx
	seen  lru.Cache
	now   func() time.Time
}

// NewNTimeForecaster returns an NTimeForecaster with an empty grid. A
// seenCacheSize of zero uses defaultSeenCacheSize.
func NewNTimeForecaster(seenCacheSize uint) *NTimeForecaster {
	if seenCacheSize == 0 {
		seenCacheSize = defaultSeenCacheSize
	}
	return &NTimeForecaster{
		cells: make(map[cellKey][]ConfirmedTx),
		seen:  lru.NewCache(seenCacheSize),
		now:   time.Now,
	}
}

// Name implements Forecaster.
func (f *NTimeForecaster) Name() string { return "ntime" }

// MaxTarget implements Forecaster.
func (f *NTimeForecaster) MaxTarget() uint32 { return MaxHours }

// OnBlockConnected linearizes the block's removed set to recover each
// transaction's mining score, then records every transaction not already
// seen into the diagonal cell matching its arrival-to-confirmation delay.
func (f *NTimeForecaster) OnBlockConnected(event mempoolview.BlockConnectedEvent) {
	weightCap := totalEntryWeight(event.Removed)
	result := linearize.Linearize(event.Removed, weightCap)
	byID := indexEntries(event.Removed)

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, chunk := range result.Chunks {
		rate := feeRatePerKvB(chunk.FeeFrac)
		for _, txid := range chunk.TxIDs {
			if f.seen.Contains(txid) {
				continue
			}
			entry, ok := byID[txid]
			if !ok {
				continue
			}
			f.seen.Add(txid)

			idx := confirmIntervalIndex(entry.Arrival, event.ConnectedAt)
			key := cellKey{I: idx, J: idx}
			f.cells[key] = append(f.cells[key], ConfirmedTx{
				Arrival:      entry.Arrival,
				Confirmation: event.ConnectedAt,
				FeeRate:      rate,
				VSize:        entry.VSize,
			})
		}
	}
}

// confirmIntervalIndex computes idx = max(0, ceil((confirm-arrive)/1h) - 1),
// clipped to the grid's row range.
func confirmIntervalIndex(arrive, confirm time.Time) int {
	hours := confirm.Sub(arrive).Hours()
	idx := int(math.Ceil(hours)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= MaxHours {
		idx = MaxHours - 1
	}
	return idx
}

// UpdateTrackingStats ages the grid by one hour: every cell's row index
// increments, and any row that would land at or past MaxHours drops off.
// Callers drive this explicitly, typically once per StatsUpdateInterval,
// rather than NTimeForecaster spawning its own ticker.
func (f *NTimeForecaster) UpdateTrackingStats() {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[cellKey][]ConfirmedTx, len(f.cells))
	for key, txs := range f.cells {
		ni := key.I + 1
		if ni >= MaxHours {
			continue
		}
		next[cellKey{I: ni, J: key.J}] = txs
	}
	f.cells = next
}

// Estimate implements Forecaster.
func (f *NTimeForecaster) Estimate(hours uint32) ForecastResult {
	if hours == 0 || hours > f.MaxTarget() {
		return errorResult(f.Name(), 0, errTargetOutOfRange)
	}

	f.mu.RLock()
	windowSamples := f.collectLocked(0, int(hours))
	start := int(((hours + 23) / 24) * 24)
	end := start - int(hours)
	histSamples := f.collectLocked(end, start)
	f.mu.RUnlock()

	windowPct, ok := computeSelfSized(windowSamples)
	if !ok {
		return errorResult(f.Name(), 0, errInsufficientSample)
	}
	histPct, ok := computeSelfSized(histSamples)
	if !ok {
		return errorResult(f.Name(), 0, errInsufficientSample)
	}

	chosen := windowPct
	if histPct.P75 < windowPct.P75 {
		chosen = histPct
	}

	return ForecastResult{
		ForecasterName: f.Name(),
		LowPriority:    chosen.P25,
		HighPriority:   chosen.P50,
	}
}

// collectLocked flattens every tracked transaction whose row index falls in
// [startInclusive, endExclusive) into percentile samples. Callers must hold
// at least a read lock.
func (f *NTimeForecaster) collectLocked(startInclusive, endExclusive int) []percentile.Sample {
	var out []percentile.Sample
	for key, txs := range f.cells {
		if key.I < startInclusive || key.I >= endExclusive {
			continue
		}
		for _, tx := range txs {
			out = append(out, percentile.Sample{FeeFrac: tx.feeFrac()})
		}
	}
	return out
}

// computeSelfSized sizes a percentile engine to the sample's own total
// weight, since an hour-window of tracked transactions has no fixed block
// weight cap the way a simulated next block does.
func computeSelfSized(samples []percentile.Sample) (percentile.BlockPercentiles, bool) {
	var w int64
	for _, s := range samples {
		w += int64(s.FeeFrac.Size) * percentile.WitnessScaleFactor
	}
	if w == 0 {
		return percentile.BlockPercentiles{}, false
	}
	pct := percentile.NewEngine(w).Compute(samples)
	return pct, !pct.IsEmpty()
}

// feeRatePerKvB converts a FeeFrac's fee/size ratio to satoshis per
// kilo-virtual-byte.
func feeRatePerKvB(f feefrac.FeeFrac) int64 {
	if f.Size == 0 {
		return 0
	}
	return (f.Fee * 1000) / int64(f.Size)
}
