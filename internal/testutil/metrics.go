package testutil

import (
	"context"

	"github.com/preston-bernstein/bestlines/internal/metrics"
)

// NewRecorderWithShutdown returns an in-memory recorder and a no-op shutdown, matching metrics.Setup.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}
