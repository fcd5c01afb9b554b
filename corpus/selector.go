// Package corpus - discovery of the benchmark image working set.
package corpus

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ImageFile represents one selected image file.
type ImageFile struct {
	// Path is the full path to the image file.
	Path string
	// Name is the base file name.
	Name string
	// Index is the number parsed from the file name.
	Index int
}

var namePattern = regexp.MustCompile(`^image(\d+)\.(jpg|jpeg)$`)

// Select returns the files in dir named image<N>.jpg or image<N>.jpeg
// (case-insensitive) whose index N lies in [minIndex, maxIndex]. The
// result follows directory-listing order and is not sorted by index.
// Indices need not be contiguous or unique. Non-matching names are
// skipped; an empty directory or empty range yields an empty set.
func Select(dir string, minIndex, maxIndex int) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing image directory %s", dir)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := namePattern.FindStringSubmatch(strings.ToLower(entry.Name()))
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			// Digit group too large for an int.
			continue
		}
		if index < minIndex || index > maxIndex {
			continue
		}
		files = append(files, ImageFile{
			Path:  filepath.Join(dir, entry.Name()),
			Name:  entry.Name(),
			Index: index,
		})
	}
	return files, nil
}
