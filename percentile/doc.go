// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package percentile computes weight-weighted fee-rate percentiles over a
// linearized sequence of mempool samples, simulating how far into a block
// of a given weight cap a given fee rate would land.
package percentile
