// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package insync tracks whether recently mined blocks agree closely enough
// with this node's own mempool and block template to trust forecasts that
// assume the node is caught up with the network.
package insync
