// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package insync

import "github.com/btcsuite/btclog"

// log is the package-wide logger, installed via UseLogger.
var log = btclog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger installs logger as the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
