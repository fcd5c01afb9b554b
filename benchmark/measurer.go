// Package benchmark - shared plumbing for timed strategy runs.
package benchmark

import (
	"context"
	"time"
)

// Measurer is a single benchmarkable strategy: one call performs one
// complete pass over its working set and reports the elapsed wall time.
type Measurer interface {
	Measure(ctx context.Context) (time.Duration, error)
}
