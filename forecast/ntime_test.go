// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"testing"
	"time"

	"github.com/btcsuite/feeforecast/mempoolview"
	"github.com/stretchr/testify/require"
)

func TestConfirmIntervalIndex(t *testing.T) {
	base := time.Unix(0, 0)

	require.Equal(t, 0, confirmIntervalIndex(base, base.Add(30*time.Minute)))
	require.Equal(t, 0, confirmIntervalIndex(base, base.Add(time.Hour)))
	require.Equal(t, 1, confirmIntervalIndex(base, base.Add(90*time.Minute)))
	require.Equal(t, MaxHours-1, confirmIntervalIndex(base, base.Add(10000*time.Hour)))
}

func TestNTimeForecasterRecordsAndEstimates(t *testing.T) {
	f := NewNTimeForecaster(0)
	base := time.Unix(0, 0)

	// Window sample: confirmed 30 minutes after arrival, landing at row 0,
	// within Estimate(1)'s window of [0,1).
	windowTxs := make([]mempoolview.Entry, 200)
	for i := range windowTxs {
		rate := int64(i%10) + 1
		windowTxs[i] = mempoolview.Entry{
			TxID:    hashWide(i + 1),
			Fee:     rate * 1000,
			VSize:   1000,
			Arrival: base.Add(-30 * time.Minute),
		}
	}
	f.OnBlockConnected(mempoolview.BlockConnectedEvent{
		Height:      1,
		ConnectedAt: base,
		Removed:     windowTxs,
	})

	// Historical sample: Estimate(1)'s historical window is row 23 ([23,24)),
	// so confirm these 23.5 hours after arrival.
	histTxs := make([]mempoolview.Entry, 200)
	for i := range histTxs {
		rate := int64(i%10) + 1
		histTxs[i] = mempoolview.Entry{
			TxID:    hashWide(1000 + i),
			Fee:     rate * 1000,
			VSize:   1000,
			Arrival: base.Add(-23*time.Hour - 30*time.Minute),
		}
	}
	f.OnBlockConnected(mempoolview.BlockConnectedEvent{
		Height:      2,
		ConnectedAt: base,
		Removed:     histTxs,
	})

	got := f.Estimate(1)
	require.Empty(t, got.Err)
	require.NotZero(t, got.HighPriority)
}

func TestNTimeForecasterInsufficientWhenEmpty(t *testing.T) {
	f := NewNTimeForecaster(0)
	got := f.Estimate(1)

	require.Equal(t, errInsufficientSample, got.Err)
}

func TestNTimeForecasterDedupesSeenTransactions(t *testing.T) {
	f := NewNTimeForecaster(0)
	base := time.Unix(0, 0)

	removed := []mempoolview.Entry{
		{TxID: hashWide(1), Fee: 1000, VSize: 1000, Arrival: base.Add(-time.Hour)},
	}
	event := mempoolview.BlockConnectedEvent{Height: 1, ConnectedAt: base, Removed: removed}

	f.OnBlockConnected(event)
	f.mu.RLock()
	count := len(f.cells)
	var total int
	for _, txs := range f.cells {
		total += len(txs)
	}
	f.mu.RUnlock()
	require.Equal(t, 1, count)
	require.Equal(t, 1, total)

	// Replaying the same block must not double-record the transaction.
	f.OnBlockConnected(event)
	f.mu.RLock()
	total = 0
	for _, txs := range f.cells {
		total += len(txs)
	}
	f.mu.RUnlock()
	require.Equal(t, 1, total)
}

func TestNTimeForecasterUpdateTrackingStatsAges(t *testing.T) {
	f := NewNTimeForecaster(0)
	base := time.Unix(0, 0)

	f.OnBlockConnected(mempoolview.BlockConnectedEvent{
		Height:      1,
		ConnectedAt: base,
		Removed: []mempoolview.Entry{
			{TxID: hashWide(1), Fee: 1000, VSize: 1000, Arrival: base.Add(-time.Hour)},
		},
	})

	f.mu.RLock()
	_, atZero := f.cells[cellKey{0, 0}]
	f.mu.RUnlock()
	require.True(t, atZero)

	f.UpdateTrackingStats()

	f.mu.RLock()
	_, stillAtZero := f.cells[cellKey{0, 0}]
	_, atOne := f.cells[cellKey{1, 0}]
	f.mu.RUnlock()
	require.False(t, stillAtZero)
	require.True(t, atOne)
}

func TestNTimeForecasterTargetOutOfRange(t *testing.T) {
	f := NewNTimeForecaster(0)
	require.Equal(t, errTargetOutOfRange, f.Estimate(0).Err)
	require.Equal(t, errTargetOutOfRange, f.Estimate(MaxHours+1).Err)
}
