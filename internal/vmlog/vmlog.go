// Package vmlog provides the VM's structured logger, shared by the GC
// pool, evaluator, and lexer include-resolution so that verbose CLI runs
// get one consistent stream. A single --verbose flag maps onto a standard
// log/slog level, so non-CLI hosts (pkg/vmhost) can plug in their own
// handler instead of always writing to stderr.
package vmlog

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	level   = new(slog.LevelVar)
	logger  atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelWarn)
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// L returns the package-level logger.
func L() *slog.Logger { return logger.Load() }

// SetVerbose raises or lowers the log level: verbose=true selects Debug,
// false selects Warn. The CLI exposes this as a single --verbose flag
// rather than every slog level.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// SetHandler replaces the underlying slog.Handler, letting a host embedder
// (pkg/vmhost) redirect VM diagnostics into its own logging pipeline.
func SetHandler(h slog.Handler) {
	logger.Store(slog.New(h))
}
