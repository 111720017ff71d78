// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package aggregator

import (
	"sync"

	"github.com/btcsuite/feeforecast/forecast"
)

// Aggregator registers a flat list of forecasters and, on a query, calls
// every one of them with the same target and picks the lowest non-empty
// result. It never reorders, filters, or weights forecasters by identity;
// selection is purely on returned values.
type Aggregator struct {
	mu          sync.RWMutex
	forecasters []forecast.Forecaster
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Register adds f to the set of forecasters consulted by Estimate.
func (a *Aggregator) Register(f forecast.Forecaster) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forecasters = append(a.forecasters, f)
}

// MaxTarget returns the largest target any registered forecaster accepts.
func (a *Aggregator) MaxTarget() uint32 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var max uint32
	for _, f := range a.forecasters {
		if f.MaxTarget() > max {
			max = f.MaxTarget()
		}
	}
	return max
}

// Estimate calls every registered forecaster with target and returns the
// non-empty result with the lowest HighPriority fee rate, using LowPriority
// as a tiebreaker. It also returns the error strings from every forecaster
// that returned an empty result. If none succeeded, the returned result is
// empty.
func (a *Aggregator) Estimate(target uint32) (forecast.ForecastResult, []string) {
	a.mu.RLock()
	forecasters := make([]forecast.Forecaster, len(a.forecasters))
	copy(forecasters, a.forecasters)
	a.mu.RUnlock()

	var (
		picked forecast.ForecastResult
		have   bool
		errs   []string
	)

	for _, f := range forecasters {
		result := f.Estimate(target)
		if result.IsEmpty() {
			if result.Err != "" {
				errs = append(errs, result.Err)
			}
			continue
		}
		if !have || better(result, picked) {
			picked = result
			have = true
		}
	}

	if !have {
		return forecast.ForecastResult{}, errs
	}
	return picked, errs
}

// better reports whether candidate should replace current as the picked
// result: a lower HighPriority wins, LowPriority breaks a tie.
func better(candidate, current forecast.ForecastResult) bool {
	if candidate.HighPriority != current.HighPriority {
		return candidate.HighPriority < current.HighPriority
	}
	return candidate.LowPriority < current.LowPriority
}

// Describe calls every registered forecaster with target and returns each
// one's raw result, keyed by forecaster name, independent of which one the
// aggregate pick selected. It exists for debugging and for demo tooling
// that wants to show every forecaster's opinion side by side.
func (a *Aggregator) Describe(target uint32) map[string]forecast.ForecastResult {
	a.mu.RLock()
	forecasters := make([]forecast.Forecaster, len(a.forecasters))
	copy(forecasters, a.forecasters)
	a.mu.RUnlock()

	out := make(map[string]forecast.ForecastResult, len(forecasters))
	for _, f := range forecasters {
		out[f.Name()] = f.Estimate(target)
	}
	return out
}
