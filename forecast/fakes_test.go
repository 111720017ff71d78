// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/mempoolview"
)

// fakeSnapshot is a fixed, in-memory mempoolview.Snapshot for tests.
type fakeSnapshot struct {
	entries   []mempoolview.Entry
	loadTried bool
}

func (s *fakeSnapshot) Entries() []mempoolview.Entry { return s.entries }

func (s *fakeSnapshot) Get(txid chainhash.Hash) (mempoolview.Entry, bool) {
	for _, e := range s.entries {
		if e.TxID == txid {
			return e, true
		}
	}
	return mempoolview.Entry{}, false
}

func (s *fakeSnapshot) LoadTried() bool { return s.loadTried }

// fakeChainstate is a fixed mempoolview.Chainstate for tests.
type fakeChainstate struct {
	height uint32
}

func (c *fakeChainstate) ActiveTipHeight() uint32 { return c.height }

func hashN(n byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = n
	return h
}

// hashWide builds a distinct transaction id for n up to 2^32, for tests
// that need more ids than hashN's single byte allows.
func hashWide(n int) (h chainhash.Hash) {
	h[0] = byte(n)
	h[1] = byte(n >> 8)
	h[2] = byte(n >> 16)
	h[3] = byte(n >> 24)
	return h
}

// fakeSyncChecker is a fixed syncChecker for tests.
type fakeSyncChecker struct {
	synced bool
}

func (c fakeSyncChecker) RoughlySynced() bool { return c.synced }
