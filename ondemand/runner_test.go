package ondemand

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perf-lab/imgbench/benchmark"
)

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 3)

	saturations := 0
	runner := &Runner{
		Config: benchmark.Config{
			ImageDir:    dir,
			MinIndex:    1,
			ImageCounts: []int{3},
			Trials:      2,
		},
		Saturate: func(ctx context.Context, dir string, size int64) error {
			saturations++
			return nil
		},
	}
	require.NoError(t, runner.Run(context.Background()))

	// Two evictions per trial: one before each timed pass.
	assert.Equal(t, 4, saturations)

	results := runner.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Images)
	assert.Len(t, results[0].Speedups, 2)
	assert.Greater(t, results[0].SpeedupAvg, 0.0)
}

func TestRunnerSaturateFailureAborts(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 1)

	boom := errors.New("saturate failed")
	runner := &Runner{
		Config: benchmark.Config{
			ImageDir:    dir,
			MinIndex:    1,
			ImageCounts: []int{1},
			Trials:      1,
		},
		Saturate: func(ctx context.Context, dir string, size int64) error {
			return boom
		},
	}
	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestWriteReport(t *testing.T) {
	runner := &Runner{
		results: []Result{
			{Images: 50, SpeedupAvg: 1.5},
			{Images: 100, SpeedupAvg: 2.25},
		},
	}

	var sb strings.Builder
	require.NoError(t, runner.WriteReport(&sb))

	report := sb.String()
	assert.True(t, strings.HasPrefix(report, "Average Speedup Report\n========================\n"))
	assert.Contains(t, report, "Number of images: 50 - Average speedup: 1.5x")
	assert.Contains(t, report, "Number of images: 100 - Average speedup: 2.25x")
}

func TestSaturateCache(t *testing.T) {
	scratch := t.TempDir()

	// A small scratch file keeps the test fast; the mechanism is
	// identical at 2 GiB.
	require.NoError(t, SaturateCache(context.Background(), scratch, 4<<20))

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch file must be removed")
}

func TestSaturateCacheCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scratch := t.TempDir()
	assert.Error(t, SaturateCache(ctx, scratch, 4<<20))

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch file must be removed on error paths too")
}
