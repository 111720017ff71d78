// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command feeforecastd is a short-lived demo that exercises the forecasting
// core's domain stack end to end: it builds a synthetic mempool and a
// handful of synthetic mined blocks, wires every forecaster into an
// aggregator, and prints the result. It is not a node; a real embedder
// supplies its own mempoolview.Snapshot, mempoolview.Chainstate and
// mempoolview.NotificationSink wiring instead of the synthetic data here.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/feeforecast/aggregator"
	"github.com/btcsuite/feeforecast/forecast"
	"github.com/btcsuite/feeforecast/insync"
	"github.com/btcsuite/feeforecast/internal/wiring"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/mempoolview"
	flags "github.com/jessevdk/go-flags"
)

// demoSnapshot is a fixed synthetic mempool standing in for a real node's
// mempool connection.
type demoSnapshot struct {
	entries []mempoolview.Entry
}

func (s *demoSnapshot) Entries() []mempoolview.Entry { return s.entries }

func (s *demoSnapshot) Get(txid chainhash.Hash) (mempoolview.Entry, bool) {
	for _, e := range s.entries {
		if e.TxID == txid {
			return e, true
		}
	}
	return mempoolview.Entry{}, false
}

func (s *demoSnapshot) LoadTried() bool { return true }

type demoChainstate struct{ height uint32 }

func (c *demoChainstate) ActiveTipHeight() uint32 { return c.height }

// syntheticMempool builds n unlinked transactions with randomized fee rates
// and arrival times, standing in for a real mempool snapshot.
func syntheticMempool(rng *rand.Rand, n int, idBase uint32) []mempoolview.Entry {
	out := make([]mempoolview.Entry, n)
	now := time.Now()
	for i := range out {
		var id chainhash.Hash
		v := idBase + uint32(i)
		id[0], id[1], id[2], id[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)

		rate := int64(rng.Intn(50) + 1)
		vsize := int32(140 + rng.Intn(400))
		out[i] = mempoolview.Entry{
			TxID:    id,
			Fee:     rate * int64(vsize) / 1000,
			VSize:   vsize,
			Arrival: now.Add(-time.Duration(rng.Intn(600)) * time.Second),
		}
	}
	return out
}

// syntheticBlock builds a block-connected event whose removed set is a
// synthetic mempool, standing in for a real mined block. The block's
// contents are marked as fully overlapping both the local mempool and the
// node's own expected template, the demo's stand-in for a node that is
// actually keeping up with miners.
func syntheticBlock(rng *rand.Rand, height uint32, n int) mempoolview.BlockConnectedEvent {
	removed := syntheticMempool(rng, n, height*10_000)
	txs := make([]mempoolview.BlockTx, len(removed))
	overlap := make(map[chainhash.Hash]struct{}, len(removed))
	for i, e := range removed {
		txs[i] = mempoolview.BlockTx{TxID: e.TxID, Fee: e.Fee, VSize: e.VSize}
		overlap[e.TxID] = struct{}{}
	}
	return mempoolview.BlockConnectedEvent{
		Height:           height,
		ConnectedAt:      time.Now(),
		BlockTxs:         txs,
		MempoolOverlap:   overlap,
		ExpectedTemplate: overlap,
		Removed:          removed,
	}
}

func main() {
	cfg := config{Target: 1, Debug: "info"}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return
	}

	wiring.SetLogLevels(cfg.Debug)
	wiring.Wire()

	rng := rand.New(rand.NewSource(1))

	snap := &demoSnapshot{entries: syntheticMempool(rng, 600, 0)}
	chain := &demoChainstate{height: 800_000}
	linCache := linearize.NewSharedCache()
	gate := insync.New()

	mempoolFc := forecast.NewMempoolForecaster(snap, chain, linCache, gate, 0)
	mempool10Fc := forecast.NewMempoolLast10MinForecaster(snap, chain, linCache, gate, 0)
	lastBlockFc := forecast.NewLastBlockForecaster()
	blockAvgFc := forecast.NewBlockForecaster()
	ntimeFc := forecast.NewNTimeForecaster(0)

	for i := uint32(0); i < forecast.MaxNumberOfBlocks; i++ {
		event := syntheticBlock(rng, chain.height-forecast.MaxNumberOfBlocks+1+i, 500)
		lastBlockFc.OnBlockConnected(event)
		blockAvgFc.OnBlockConnected(event)
		ntimeFc.OnBlockConnected(event)
		gate.ObserveEvent(event)
	}

	agg := aggregator.New()
	agg.Register(mempoolFc)
	agg.Register(mempool10Fc)
	agg.Register(lastBlockFc)
	agg.Register(blockAvgFc)
	agg.Register(ntimeFc)

	target := cfg.Target
	if cfg.Hours > 0 {
		target = cfg.Hours
	}

	if cfg.All {
		for name, result := range agg.Describe(target) {
			printResult(name, result)
		}
		return
	}

	result, errs := agg.Estimate(target)
	if result.IsEmpty() {
		fmt.Println("no forecaster produced an estimate:")
		for _, e := range errs {
			fmt.Println("  -", e)
		}
		return
	}
	printResult(result.ForecasterName, result)
}

func printResult(name string, r forecast.ForecastResult) {
	if r.Err != "" {
		fmt.Printf("%-14s error: %s\n", name, r.Err)
		return
	}
	low := btcutil.Amount(r.LowPriority)
	high := btcutil.Amount(r.HighPriority)
	fmt.Printf("%-14s low=%s/kvB high=%s/kvB\n", name,
		low.Format(btcutil.AmountBTC), high.Format(btcutil.AmountBTC))
}
