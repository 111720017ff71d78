// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package insync

import "github.com/btcsuite/feeforecast/mempoolview"

// roughlySynced derives a single block's alignment verdict from a
// block-connected event: both the mempool overlap and the expected-template
// overlap must each account for more than half the block's own weight.
func roughlySynced(event mempoolview.BlockConnectedEvent) bool {
	blockWeight := event.BlockWeight()
	if blockWeight == 0 {
		return false
	}
	return event.MempoolMatchWeight() > blockWeight/2 &&
		event.ExpectedMatchWeight() > blockWeight/2
}

// ObserveEvent derives the roughly-synced verdict from event and feeds it
// into the ring via Observe.
func (g *Gate) ObserveEvent(event mempoolview.BlockConnectedEvent) {
	g.Observe(event.Height, roughlySynced(event))
}
