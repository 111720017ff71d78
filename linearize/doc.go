// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package linearize turns a mempool snapshot's transaction DAG into an
// ordered sequence of chunks suitable for feeding a percentile engine: a
// simulation of how a miner would greedily pack the next block by
// ancestor-set feerate.
package linearize
