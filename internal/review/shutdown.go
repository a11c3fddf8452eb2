package review

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// ShutdownFlag is the run's shared stop signal: one writer (the signal
// watcher), many cooperative readers. Monotonic: once raised it stays
// raised for the lifetime of the run.
type ShutdownFlag struct {
	raised atomic.Bool
}

// Raise marks shutdown as requested. Safe to call more than once.
func (f *ShutdownFlag) Raise() {
	f.raised.Store(true)
}

// Raised reports whether shutdown has been requested.
func (f *ShutdownFlag) Raised() bool {
	return f.raised.Load()
}

// WatchContext raises the flag exactly once when ctx closes. The scheduler
// uses the flag to gate task starts; in-flight work observes ctx directly.
func (f *ShutdownFlag) WatchContext(ctx context.Context, logger *zap.Logger) {
	go func() {
		<-ctx.Done()
		if !f.Raised() {
			logger.Warn("shutdown requested, stopping workers")
		}
		f.Raise()
	}()
}
