package benchmark

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is the explicit per-run configuration passed into each
// benchmark runner.
type Config struct {
	// ImageDir is the directory holding the image<N>.jpg corpus.
	ImageDir string `json:"image_dir"`
	// OutputDir receives the CSV log, the JSON summary, the speedup
	// report, and rendered charts.
	OutputDir string `json:"output_dir"`
	// MinIndex is the first image index of every working set.
	MinIndex int `json:"min_index"`
	// ImageCounts lists the working-set sizes to benchmark.
	ImageCounts []int `json:"image_counts"`
	// WorkerCounts lists the pool sizes for the parallel decode passes.
	WorkerCounts []int `json:"worker_counts"`
	// Repetitions is the trial count per decompression configuration.
	Repetitions int `json:"repetitions"`
	// Trials is the trial count per on-demand load configuration.
	Trials int `json:"trials"`
	// ScratchDir holds the cache-eviction scratch file. Empty means the
	// system temp directory.
	ScratchDir string `json:"scratch_dir"`
	// ScratchBytes is the size of the cache-eviction scratch file.
	ScratchBytes int64 `json:"scratch_bytes"`
	// TargetWidth/TargetHeight, when both positive, resize each decoded
	// image to a fixed resolution. Zero disables the resize step.
	TargetWidth  int `json:"target_width"`
	TargetHeight int `json:"target_height"`
}

// DefaultConfig returns the configuration matching the harness's stock
// measurement campaign.
func DefaultConfig() Config {
	return Config{
		ImageDir:     "./images",
		OutputDir:    "./benchmark_results",
		MinIndex:     1,
		ImageCounts:  []int{50, 100, 300, 500, 700, 900},
		WorkerCounts: []int{1, 2, 4, 6, 8, 16},
		Repetitions:  10,
		Trials:       5,
		ScratchBytes: 2 << 30, // 2 GiB
	}
}

// LoadConfig loads a configuration from a JSON file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "unmarshaling config %s", path)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as indented JSON.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
