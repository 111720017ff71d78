// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempoolview defines the read-only contracts the forecasting core
// consumes from the rest of a node: a snapshot of the current mempool, the
// active chain tip height, and the notification events that drive the
// in-sync gate and the block-keyed forecasters. Nothing in this package
// validates transactions or talks to the network; it only describes the
// shape of the data the core is handed.
package mempoolview
