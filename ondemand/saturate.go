package ondemand

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// chunkSize is the unit used to stream the scratch file.
const chunkSize = 1 << 20

// SaturateCache displaces cached file data before a timed pass: it
// writes a scratch file of the given size in fixed-size chunks into dir
// (the system temp directory when dir is empty), reads it back
// sequentially, and deletes it. Best effort only; no platform
// guarantees full eviction.
func SaturateCache(ctx context.Context, dir string, size int64) error {
	f, err := os.CreateTemp(dir, "imgbench-scratch-*")
	if err != nil {
		return errors.Wrap(err, "creating scratch file")
	}
	path := f.Name()
	defer os.Remove(path)

	chunk := make([]byte, chunkSize)
	for written := int64(0); written < size; written += chunkSize {
		if err := ctx.Err(); err != nil {
			f.Close()
			return err
		}
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			return errors.Wrap(err, "writing scratch file")
		}
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing scratch file")
	}

	f, err = os.Open(path)
	if err != nil {
		return errors.Wrap(err, "reopening scratch file")
	}
	defer f.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.Read(chunk); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading scratch file")
		}
	}
}
