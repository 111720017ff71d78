// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wiring owns the module's logging backend and dispatches
// UseLogger calls to every package that exposes one. It mirrors btcd's
// internal/log package, scaled down to this module's four logging
// subsystems.
package wiring

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/feeforecast/aggregator"
	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/forecast"
	"github.com/btcsuite/feeforecast/insync"
	"github.com/btcsuite/feeforecast/linearize"
	"github.com/btcsuite/feeforecast/percentile"
	"github.com/jrick/logrotate/rotator"
)

// logWriter outputs to both standard output and the write end of the log
// rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if LogRotator != nil {
		LogRotator.Write(p)
	}
	return len(p), nil
}

var (
	// backendLog is the backend every subsystem logger below is created
	// from.
	backendLog = btclog.NewBackend(logWriter{})

	// LogRotator rotates the on-disk log file. Nil until InitLogRotator
	// is called; until then logWriter only writes to stdout.
	LogRotator *rotator.Rotator

	// FfrcLog covers feefrac, linearize and percentile: the primitives
	// that share no independent identity of their own for logging
	// purposes.
	FfrcLog = backendLog.Logger("FFRC")

	// FcstLog covers the forecast package's individual forecasters.
	FcstLog = backendLog.Logger("FCST")

	// AggrLog covers the aggregator.
	AggrLog = backendLog.Logger("AGGR")

	// SyncLog covers the in-sync gate.
	SyncLog = backendLog.Logger("SYNC")
)

// SubsystemLoggers maps each subsystem identifier to its logger, for
// SetLogLevel and SetLogLevels.
var SubsystemLoggers = map[string]btclog.Logger{
	"FFRC": FfrcLog,
	"FCST": FcstLog,
	"AGGR": AggrLog,
	"SYNC": SyncLog,
}

// Wire installs every subsystem logger into its owning package. Callers
// invoke this once during startup, after adjusting log levels if desired.
func Wire() {
	feefrac.UseLogger(FfrcLog)
	linearize.UseLogger(FfrcLog)
	percentile.UseLogger(FfrcLog)
	forecast.UseLogger(FcstLog)
	aggregator.UseLogger(AggrLog)
	insync.UseLogger(SyncLog)
}

// InitLogRotator initializes the rotator that writes logs to logFile,
// rolling files in the same directory. Call this before Wire if file
// logging is wanted; without it, logWriter only writes to stdout.
func InitLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
		os.Exit(1)
	}
	LogRotator = r
}

// SetLogLevel sets the log level for the given subsystem identifier.
// Invalid subsystems are ignored.
func SetLogLevel(subsystemID, logLevel string) {
	logger, ok := SubsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets logLevel on every subsystem logger.
func SetLogLevels(logLevel string) {
	for subsystemID := range SubsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}
