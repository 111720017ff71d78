// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package forecastcache provides a short-lived, whole-map-swap cache of
// fee forecasts keyed by confirmation horizon, shared between the
// validation-notification thread and RPC-facing query threads.
package forecastcache
