// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package forecast implements the individual fee-rate forecasters: small,
// independent estimators that each consult a mempool snapshot or the recent
// block history and produce a ForecastResult. The aggregator package
// multiplexes across whichever of these are registered.
package forecast
