// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempoolview

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RemovalReason identifies why a transaction left the mempool outside of
// being mined.
type RemovalReason int

const (
	// ReasonExpiry marks a transaction evicted for sitting in the
	// mempool past its expiry horizon.
	ReasonExpiry RemovalReason = iota

	// ReasonSizeLimit marks a transaction evicted to keep the mempool
	// under its configured size limit.
	ReasonSizeLimit

	// ReasonReorg marks a transaction removed because a block reorg
	// invalidated it.
	ReasonReorg

	// ReasonConflict marks a transaction removed because it conflicted
	// with another transaction that was accepted.
	ReasonConflict

	// ReasonReplaced marks a transaction removed by a fee-bumping
	// replacement.
	ReasonReplaced
)

// String implements fmt.Stringer.
func (r RemovalReason) String() string {
	switch r {
	case ReasonExpiry:
		return "expiry"
	case ReasonSizeLimit:
		return "size-limit"
	case ReasonReorg:
		return "reorg"
	case ReasonConflict:
		return "conflict"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// BlockTx is a transaction as it appears in a connected block: enough
// information to compute its weight and its mining feerate.
type BlockTx struct {
	TxID  chainhash.Hash
	Fee   int64
	VSize int32
}

// Weight returns the tx's weight in weight units (vsize scaled by the
// witness scale factor).
func (b BlockTx) Weight() int64 {
	return int64(b.VSize) * witnessScaleFactor
}

const witnessScaleFactor = 4

// BlockConnectedEvent carries everything subscribers need when a block
// connects: the block's own transaction list, which of those transactions
// were already present in the local mempool or in the node's own expected
// next-block template (both used by the in-sync gate), the time the block
// was connected, and the set of mempool entries removed because of this
// block (a closed linearization of what actually got mined, including each
// removed transaction's original arrival time).
type BlockConnectedEvent struct {
	Height           uint32
	ConnectedAt      time.Time
	BlockTxs         []BlockTx
	MempoolOverlap   map[chainhash.Hash]struct{}
	ExpectedTemplate map[chainhash.Hash]struct{}
	Removed          []Entry
}

// BlockWeight returns the total weight of every transaction in the block.
func (e BlockConnectedEvent) BlockWeight() int64 {
	var total int64
	for _, tx := range e.BlockTxs {
		total += tx.Weight()
	}
	return total
}

// MempoolMatchWeight returns the total weight of block transactions that
// were already present in the local mempool.
func (e BlockConnectedEvent) MempoolMatchWeight() int64 {
	var total int64
	for _, tx := range e.BlockTxs {
		if _, ok := e.MempoolOverlap[tx.TxID]; ok {
			total += tx.Weight()
		}
	}
	return total
}

// ExpectedMatchWeight returns the total weight of block transactions that
// were present in the node's own expected next-block template.
func (e BlockConnectedEvent) ExpectedMatchWeight() int64 {
	var total int64
	for _, tx := range e.BlockTxs {
		if _, ok := e.ExpectedTemplate[tx.TxID]; ok {
			total += tx.Weight()
		}
	}
	return total
}

// NotificationSink is implemented by subscribers that want to observe
// mempool and chain activity. The host guarantees that for a given
// subscriber, the handler for one event runs to completion before the
// next is dispatched, and that every on_transaction_removed event caused
// by a block is delivered before that block's on_block_connected event.
type NotificationSink interface {
	// OnTransactionAdded notifies the subscriber of a new mempool entry.
	OnTransactionAdded(txid chainhash.Hash, fee int64, vsize int32, arrival time.Time, sequence uint64)

	// OnTransactionRemoved notifies the subscriber that a transaction
	// left the mempool for a reason other than confirmation.
	OnTransactionRemoved(txid chainhash.Hash, reason RemovalReason, sequence uint64)

	// OnBlockConnected notifies the subscriber that a block was
	// connected to the active chain.
	OnBlockConnected(event BlockConnectedEvent)
}
