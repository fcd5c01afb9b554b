package stats

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	mean, err := Mean([]float64{1.0, 2.0, 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-12)
}

func TestMeanEmpty(t *testing.T) {
	_, err := Mean(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSamples))

	_, err = Mean([]float64{})
	assert.True(t, errors.Is(err, ErrNoSamples))
}

func TestStdev(t *testing.T) {
	assert.Equal(t, 0.0, Stdev(nil))
	assert.Equal(t, 0.0, Stdev([]float64{5.0}))

	// Sample stdev of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7).
	got := Stdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-12)
}

func TestSpeedup(t *testing.T) {
	assert.InDelta(t, 2.0, Speedup(10.0, 5.0), 1e-12)
}

func TestSpeedupZeroDenominator(t *testing.T) {
	got := Speedup(10.0, 0.0)
	assert.True(t, math.IsInf(got, 1))
}

func TestEfficiency(t *testing.T) {
	assert.Equal(t, 1.0, Efficiency(4.0, 4))
	assert.InDelta(t, 0.5, Efficiency(4.0, 8), 1e-12)
}

func TestEfficiencyZeroWorkers(t *testing.T) {
	assert.True(t, math.IsInf(Efficiency(4.0, 0), 1))
}
