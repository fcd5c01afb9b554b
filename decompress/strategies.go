package decompress

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/perf-lab/imgbench/corpus"
)

// Sequential decodes every selected image in a single goroutine.
type Sequential struct {
	Dir      string
	MinIndex int
	MaxIndex int
	Decoder  Decoder
}

// Measure runs one full sequential decode pass and returns its wall time.
func (s Sequential) Measure(ctx context.Context) (time.Duration, error) {
	files, err := corpus.Select(s.Dir, s.MinIndex, s.MaxIndex)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := s.Decoder.DecodeFile(file.Path); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

// Parallel distributes the per-image decode over a fixed pool of worker
// goroutines. A worker error aborts the whole pass.
type Parallel struct {
	Dir      string
	MinIndex int
	MaxIndex int
	// Workers is the pool size; <= 0 means the logical core count.
	Workers int
	Decoder Decoder
}

// Measure runs one full parallel decode pass and returns its wall time.
func (p Parallel) Measure(ctx context.Context) (time.Duration, error) {
	files, err := corpus.Select(p.Dir, p.MinIndex, p.MaxIndex)
	if err != nil {
		return 0, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	tasks := make(chan corpus.ImageFile)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for file := range tasks {
				if _, err := p.Decoder.DecodeFile(file.Path); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(tasks)
		for _, file := range files {
			select {
			case tasks <- file:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
