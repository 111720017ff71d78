// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// config holds feeforecastd's command-line options.
type config struct {
	Target uint32 `short:"t" long:"target" description:"Confirmation target in blocks (ignored by -hours)" default:"1"`
	Hours  uint32 `short:"H" long:"hours" description:"If set, use this many hours as the target for every forecaster instead of -target (only NTimeForecaster accepts targets above 2)"`
	All    bool   `short:"a" long:"all" description:"Print every registered forecaster's raw result, not just the aggregate pick"`
	Debug  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}" default:"info"`
}
