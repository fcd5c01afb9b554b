package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryMetrics captures memory usage statistics around a run.
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
}

// Summary is the run-level record persisted next to the CSV log.
type Summary struct {
	RunID       string        `json:"run_id"`
	Timestamp   time.Time     `json:"timestamp"`
	Config      Config        `json:"config"`
	Rows        []Row         `json:"rows"`
	MemoryStats MemoryMetrics `json:"memory_stats"`
}

// NewSummary stamps a run summary with a fresh run ID and timestamp.
func NewSummary(cfg Config, rows []Row, mem MemoryMetrics) Summary {
	return Summary{
		RunID:       uuid.NewString(),
		Timestamp:   time.Now(),
		Config:      cfg,
		Rows:        rows,
		MemoryStats: mem,
	}
}

// Save writes the summary as indented JSON into dir, named with the run
// timestamp, and returns the file path.
func (s Summary) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	name := fmt.Sprintf("benchmark_results_%s.json", s.Timestamp.Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling summary")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing summary %s", path)
	}
	return path, nil
}
