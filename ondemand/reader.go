// Package ondemand - sequential vs. concurrent raw-byte load benchmark.
//
// Both readers load the raw bytes of every image in an index range,
// keyed by base file name, without decoding anything. They share one
// retrieval surface and differ only in how the reads are scheduled.
package ondemand

import (
	"bytes"
	"context"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/perf-lab/imgbench/corpus"
)

// ErrNotFound is returned by Get for a name that has not been loaded.
var ErrNotFound = errors.New("image not found")

// store holds loaded image bytes keyed by file name.
type store struct {
	mu     sync.Mutex
	images map[string][]byte
}

func (s *store) replace(images map[string][]byte) {
	s.mu.Lock()
	s.images = images
	s.mu.Unlock()
}

// Get returns a fresh reader over the stored bytes for name. Every call
// returns an independently seekable reader; callers never share a
// cursor.
func (s *store) Get(name string) (*bytes.Reader, error) {
	s.mu.Lock()
	data, ok := s.images[name]
	s.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "image %q", name)
	}
	return bytes.NewReader(data), nil
}

// Names returns the loaded file names.
func (s *store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	return names
}

// SequentialReader loads every selected file strictly one at a time.
type SequentialReader struct {
	Dir      string
	MinIndex int
	MaxIndex int

	store
}

// Load reads every selected file fully into memory, one file at a time.
func (r *SequentialReader) Load(ctx context.Context) error {
	files, err := corpus.Select(r.Dir, r.MinIndex, r.MaxIndex)
	if err != nil {
		return err
	}

	images := make(map[string][]byte, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", file.Path)
		}
		images[file.Name] = data
	}
	r.replace(images)
	return nil
}

// Measure times one full Load pass.
func (r *SequentialReader) Measure(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.Load(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// ConcurrentReader issues all reads as concurrent goroutines and awaits
// them jointly.
type ConcurrentReader struct {
	Dir      string
	MinIndex int
	MaxIndex int

	store
}

// Load reads every selected file concurrently. Each task is paired with
// its file name at submission time, so completion order never matters:
// every goroutine writes once into its own pre-assigned slot.
func (r *ConcurrentReader) Load(ctx context.Context) error {
	files, err := corpus.Select(r.Dir, r.MinIndex, r.MaxIndex)
	if err != nil {
		return err
	}

	results := make([][]byte, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file.Path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", file.Path)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	images := make(map[string][]byte, len(files))
	for i, file := range files {
		images[file.Name] = results[i]
	}
	r.replace(images)
	return nil
}

// Measure times one full Load pass.
func (r *ConcurrentReader) Measure(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.Load(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
