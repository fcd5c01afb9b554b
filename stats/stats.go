// Package stats - aggregate math for benchmark trials.
package stats

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoSamples is returned when an aggregate is requested over an empty
// sample set.
var ErrNoSamples = errors.New("stats: no samples")

// Mean returns the arithmetic mean of samples. An empty sample set is an
// error, never NaN.
func Mean(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples)), nil
}

// Stdev returns the sample standard deviation, 0 for fewer than two
// samples.
func Stdev(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean, _ := Mean(samples)
	var sq float64
	for _, s := range samples {
		d := s - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(samples)-1))
}

// Speedup returns sequential/concurrent. A zero denominator yields +Inf
// rather than a division panic.
func Speedup(sequential, concurrent float64) float64 {
	if concurrent == 0 {
		return math.Inf(1)
	}
	return sequential / concurrent
}

// Efficiency returns speedup divided by the worker count, indicating how
// well added workers are utilized.
func Efficiency(speedup float64, workers int) float64 {
	if workers == 0 {
		return math.Inf(1)
	}
	return speedup / float64(workers)
}
