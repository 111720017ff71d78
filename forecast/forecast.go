// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import "time"

const (
	// MaxConfTarget is the highest confirmation target MempoolForecaster
	// accepts.
	MaxConfTarget = 1

	// MempoolLast10MinForecastMaxTarget is the highest confirmation
	// target MempoolLast10MinForecaster accepts.
	MempoolLast10MinForecastMaxTarget = 2

	// LastBlockForecastMaxTarget is the highest confirmation target
	// LastBlockForecaster accepts.
	LastBlockForecastMaxTarget = 2

	// BlockForecastMaxTarget is the highest confirmation target
	// BlockForecaster accepts.
	BlockForecastMaxTarget = 2

	// MaxNumberOfBlocks is the size of BlockForecaster's rolling window.
	MaxNumberOfBlocks = 3

	// MaxHours is the largest target, in hours, NTimeForecaster accepts,
	// and the number of rows in its tracking grid.
	MaxHours = 504

	// SecondsInHour converts a duration in seconds to hours.
	SecondsInHour = 3600

	// StatsUpdateInterval is how often NTimeForecaster's tracking grid
	// ages by one row.
	StatsUpdateInterval = time.Hour
)

// Error strings surfaced in ForecastResult.Err. Callers match on these by
// value; they are not Go errors because ForecastResult crosses what spec.md
// treats as the core's external, language-agnostic contract.
const (
	errTargetOutOfRange   = "target out of range"
	errMempoolNotLoaded   = "mempool has not finished loading"
	errNotInSync          = "mempool is not roughly in sync with miners"
	errInsufficientSample = "insufficient sample"
	errEmptyMempool       = "No transactions available in the mempool yet."
	errInsufficientData   = "insufficient data"
)

// ForecastResult is either empty (Err set, both fee rates zero) or carries
// the 25th and 50th percentile fee rates of whatever sample the forecaster
// chose, expressed in satoshis per kilo-virtual-byte.
type ForecastResult struct {
	ForecasterName string
	BlockHeight    uint32
	LowPriority    int64
	HighPriority   int64
	Err            string
}

// IsEmpty reports whether the result carries no fee rates.
func (r ForecastResult) IsEmpty() bool {
	return r.LowPriority == 0 && r.HighPriority == 0
}

// errorResult builds the empty ForecastResult a forecaster returns on
// failure.
func errorResult(name string, height uint32, msg string) ForecastResult {
	return ForecastResult{ForecasterName: name, BlockHeight: height, Err: msg}
}

// syncChecker reports whether the node's recent view of the chain lines up
// with what miners actually included in their last few blocks. Forecasters
// whose projections assume the live mempool reflects what the next miner
// will select refuse to answer when it reports false. A nil syncChecker
// skips the check, for callers that don't wire in-sync tracking.
type syncChecker interface {
	RoughlySynced() bool
}

// Forecaster is the shared contract every fee-rate estimator implements.
// Implementations are independent state machines; the aggregator holds a
// flat list of them and never inspects their concrete type.
type Forecaster interface {
	// Name identifies the forecaster in ForecastResult and in the
	// aggregator's Describe dump.
	Name() string

	// MaxTarget returns the largest target this forecaster accepts.
	MaxTarget() uint32

	// Estimate returns a fee-rate forecast for target, or an empty
	// result with Err set on failure.
	Estimate(target uint32) ForecastResult
}
