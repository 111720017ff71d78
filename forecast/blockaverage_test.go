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

func TestBlockForecasterInsufficientUntilFull(t *testing.T) {
	f := NewBlockForecaster()

	for i := 0; i < MaxNumberOfBlocks-1; i++ {
		f.OnBlockConnected(blockEventAt(uint32(i)))
		require.Equal(t, errInsufficientData, f.Estimate(1).Err)
	}

	f.OnBlockConnected(blockEventAt(uint32(MaxNumberOfBlocks - 1)))
	got := f.Estimate(1)
	require.Empty(t, got.Err)
	require.NotZero(t, got.HighPriority)
}

func TestBlockForecasterEvictsOldest(t *testing.T) {
	f := NewBlockForecaster()
	for i := 0; i < MaxNumberOfBlocks; i++ {
		f.OnBlockConnected(blockEventAt(uint32(i)))
	}
	require.Len(t, f.queue, MaxNumberOfBlocks)

	f.OnBlockConnected(blockEventAt(uint32(MaxNumberOfBlocks)))
	require.Len(t, f.queue, MaxNumberOfBlocks)
}

func TestBlockForecasterTargetOutOfRange(t *testing.T) {
	f := NewBlockForecaster()
	require.Equal(t, errTargetOutOfRange, f.Estimate(0).Err)
	require.Equal(t, errTargetOutOfRange, f.Estimate(3).Err)
}

func blockEventAt(height uint32) mempoolview.BlockConnectedEvent {
	return mempoolview.BlockConnectedEvent{
		Height:      height,
		ConnectedAt: time.Unix(0, 0),
		Removed:     uniformRemoved(100),
	}
}
