package ondemand

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/perf-lab/imgbench/benchmark"
	"github.com/perf-lab/imgbench/stats"
)

// Result holds the aggregate outcome for one image-count configuration.
type Result struct {
	Images     int       `json:"num_images"`
	Speedups   []float64 `json:"speedups"`
	SpeedupAvg float64   `json:"speedup_avg"`
}

// Runner drives the on-demand load benchmark: per image count, repeated
// cold-cache trials of the sequential and concurrent readers.
type Runner struct {
	Config benchmark.Config
	Logger *slog.Logger

	// Saturate runs before each timed pass. Defaults to SaturateCache;
	// tests stub it out.
	Saturate func(ctx context.Context, dir string, size int64) error

	results []Result
}

// Run executes Trials trials per configured image count: evict cache,
// time the sequential reader; evict cache, time the concurrent reader;
// record the per-trial speedup and average it per image count.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	saturate := r.Saturate
	if saturate == nil {
		saturate = SaturateCache
	}

	for _, numImages := range r.Config.ImageCounts {
		maxIndex := r.Config.MinIndex + numImages - 1
		logger.Info("running load benchmark", "images", numImages)

		speedups := make([]float64, 0, r.Config.Trials)
		for trial := 0; trial < r.Config.Trials; trial++ {
			if err := saturate(ctx, r.Config.ScratchDir, r.Config.ScratchBytes); err != nil {
				return err
			}
			sequential := &SequentialReader{
				Dir:      r.Config.ImageDir,
				MinIndex: r.Config.MinIndex,
				MaxIndex: maxIndex,
			}
			seqTime, err := sequential.Measure(ctx)
			if err != nil {
				return err
			}

			if err := saturate(ctx, r.Config.ScratchDir, r.Config.ScratchBytes); err != nil {
				return err
			}
			concurrent := &ConcurrentReader{
				Dir:      r.Config.ImageDir,
				MinIndex: r.Config.MinIndex,
				MaxIndex: maxIndex,
			}
			concTime, err := concurrent.Measure(ctx)
			if err != nil {
				return err
			}

			speedup := stats.Speedup(seqTime.Seconds(), concTime.Seconds())
			speedups = append(speedups, speedup)
			logger.Info("trial",
				"images", numImages,
				"trial", trial+1,
				"sequential_seconds", seqTime.Seconds(),
				"concurrent_seconds", concTime.Seconds(),
				"speedup", speedup)
		}

		avg, err := stats.Mean(speedups)
		if err != nil {
			return err
		}
		r.results = append(r.results, Result{
			Images:     numImages,
			Speedups:   speedups,
			SpeedupAvg: avg,
		})
		logger.Info("average speedup", "images", numImages, "speedup_avg", avg)
	}
	return nil
}

// Results returns the per-image-count aggregates accumulated so far.
func (r *Runner) Results() []Result {
	results := make([]Result, len(r.results))
	copy(results, r.results)
	return results
}

// WriteReport renders the plain-text average-speedup report.
func (r *Runner) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Average Speedup Report\n========================\n"); err != nil {
		return err
	}
	for _, res := range r.results {
		_, err := fmt.Fprintf(w, "Number of images: %d - Average speedup: %gx\n", res.Images, res.SpeedupAvg)
		if err != nil {
			return err
		}
	}
	return nil
}
