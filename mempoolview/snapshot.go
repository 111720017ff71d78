// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempoolview

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Entry is a read-only view of a single mempool transaction: its own fee
// and virtual size, the ids of its unconfirmed parents, and the time it
// was first seen. Size is always positive; Fee may be zero or negative for
// transactions carried only because a descendant pays for them.
type Entry struct {
	TxID    chainhash.Hash
	Fee     int64
	VSize   int32
	Parents []chainhash.Hash
	Arrival time.Time
}

// Snapshot is a consistent, read-only view of the mempool taken at a single
// instant. Implementations must present the same set of entries across the
// lifetime of a single Entries call; they need not remain consistent
// across separate calls.
type Snapshot interface {
	// Entries returns every transaction currently in the mempool. The
	// order is unspecified; callers that need a particular order (e.g.
	// the linearizer) impose it themselves.
	Entries() []Entry

	// Get returns the entry for txid, if present.
	Get(txid chainhash.Hash) (Entry, bool)

	// LoadTried reports whether the mempool has finished its initial
	// load from disk or from peers. Forecasters refuse to answer while
	// this is false.
	LoadTried() bool
}

// Chainstate is the minimal view of chain state the core needs: the height
// of the active tip.
type Chainstate interface {
	ActiveTipHeight() uint32
}
