// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package aggregator multiplexes a flat list of independent forecasters,
// picking the most conservative non-empty result for a given target.
package aggregator
