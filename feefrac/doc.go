// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package feefrac implements the FeeFrac value type: a (fee, size) pair
// ordered primarily by fee rate, and the feerate diagram built from a set
// of such pairs. These are the building blocks the rest of feeforecast uses
// to compare candidate block templates and mempool chunks without ever
// computing a floating point fee rate.
package feefrac
