package decompress

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/perf-lab/imgbench/benchmark"
	"github.com/perf-lab/imgbench/stats"
)

// Runner drives the decompression benchmark over every configured
// (image count, worker count) combination, appending one aggregate row
// per combination to the result log as soon as it is computed.
type Runner struct {
	Config benchmark.Config
	Log    *benchmark.ResultLog
	Logger *slog.Logger

	rows   []benchmark.Row
	memory benchmark.MemoryMetrics
}

// Run executes the full campaign: for each image count, a sequential
// baseline averaged over Repetitions trials, then for each worker count
// the parallel strategy over the same number of trials.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	decoder := Decoder{
		TargetWidth:  r.Config.TargetWidth,
		TargetHeight: r.Config.TargetHeight,
	}

	var startMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	for _, numImages := range r.Config.ImageCounts {
		maxIndex := r.Config.MinIndex + numImages - 1
		sequential := Sequential{
			Dir:      r.Config.ImageDir,
			MinIndex: r.Config.MinIndex,
			MaxIndex: maxIndex,
			Decoder:  decoder,
		}

		seqTimes := make([]float64, 0, r.Config.Repetitions)
		for i := 0; i < r.Config.Repetitions; i++ {
			elapsed, err := sequential.Measure(ctx)
			if err != nil {
				return err
			}
			seqTimes = append(seqTimes, elapsed.Seconds())
		}
		seqAvg, err := stats.Mean(seqTimes)
		if err != nil {
			return err
		}
		logger.Info("sequential baseline",
			"images", numImages,
			"avg_seconds", seqAvg,
			"stdev", stats.Stdev(seqTimes))

		for _, workers := range r.Config.WorkerCounts {
			parallel := Parallel{
				Dir:      r.Config.ImageDir,
				MinIndex: r.Config.MinIndex,
				MaxIndex: maxIndex,
				Workers:  workers,
				Decoder:  decoder,
			}

			parTimes := make([]float64, 0, r.Config.Repetitions)
			speedups := make([]float64, 0, r.Config.Repetitions)
			for i := 0; i < r.Config.Repetitions; i++ {
				elapsed, err := parallel.Measure(ctx)
				if err != nil {
					return err
				}
				parTimes = append(parTimes, elapsed.Seconds())
				speedups = append(speedups, stats.Speedup(seqAvg, elapsed.Seconds()))
			}
			parAvg, err := stats.Mean(parTimes)
			if err != nil {
				return err
			}
			speedupAvg, err := stats.Mean(speedups)
			if err != nil {
				return err
			}

			row := benchmark.Row{
				Images:        numImages,
				Workers:       workers,
				SequentialAvg: seqAvg,
				ParallelAvg:   parAvg,
				SpeedupAvg:    speedupAvg,
				EfficiencyAvg: stats.Efficiency(speedupAvg, workers),
			}
			if err := r.Log.Append(row); err != nil {
				return err
			}
			r.rows = append(r.rows, row)

			logger.Info("parallel pass",
				"images", numImages,
				"workers", workers,
				"parallel_avg_seconds", parAvg,
				"speedup", speedupAvg,
				"efficiency", row.EfficiencyAvg)
		}
	}

	var endMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&endMem)
	r.memory = benchmark.MemoryMetrics{
		AllocBytes:      endMem.Alloc,
		TotalAllocBytes: endMem.TotalAlloc - startMem.TotalAlloc,
		SysBytes:        endMem.Sys,
		NumGC:           endMem.NumGC - startMem.NumGC,
	}
	return nil
}

// Rows returns the aggregate rows accumulated so far.
func (r *Runner) Rows() []benchmark.Row {
	rows := make([]benchmark.Row, len(r.rows))
	copy(rows, r.rows)
	return rows
}

// Memory returns the memory telemetry captured around the last Run.
func (r *Runner) Memory() benchmark.MemoryMetrics {
	return r.memory
}
