package benchmark

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decompresslog.csv")

	log, err := CreateResultLog(path)
	require.NoError(t, err)

	rows := []Row{
		{Images: 50, Workers: 1, SequentialAvg: 1.5, ParallelAvg: 1.5, SpeedupAvg: 1.0, EfficiencyAvg: 1.0},
		{Images: 50, Workers: 4, SequentialAvg: 1.5, ParallelAvg: 0.5, SpeedupAvg: 3.0, EfficiencyAvg: 0.75},
	}
	for _, row := range rows {
		require.NoError(t, log.Append(row))
	}
	require.NoError(t, log.Close())

	got, err := ReadLog(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestResultLogHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")

	log, err := CreateResultLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	first := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, "Num_Images,Num_Processes,Sequential_Time_Avg,Parallel_Time_Avg,Speedup_Avg,Efficiency_Avg", first)
}

func TestResultLogStreamsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")

	log, err := CreateResultLog(path)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Append(Row{Images: 100, Workers: 2, SpeedupAvg: 1.8, EfficiencyAvg: 0.9}))

	// The row must be on disk before Close.
	got, err := ReadLog(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Images)
}

func TestResultLogInfiniteSpeedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")

	log, err := CreateResultLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Append(Row{
		Images: 50, Workers: 1,
		SequentialAvg: 10.0, ParallelAvg: 0.0,
		SpeedupAvg: math.Inf(1), EfficiencyAvg: math.Inf(1),
	}))
	require.NoError(t, log.Close())

	got, err := ReadLog(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0].SpeedupAvg, 1))
	assert.True(t, math.IsInf(got[0].EfficiencyAvg, 1))
}

func TestReadLogMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	content := "Num_Images,Num_Processes,Sequential_Time_Avg,Parallel_Time_Avg,Speedup_Avg,Efficiency_Avg\n" +
		"fifty,1,1.0,1.0,1.0,1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadLog(path)
	assert.Error(t, err)
}
