// Package decompress - sequential vs. worker-pool JPEG decode benchmark.
package decompress

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"os"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Decoder decodes JPEG bytes into RGBA pixels, optionally resizing the
// result to a fixed target resolution.
type Decoder struct {
	TargetWidth  int
	TargetHeight int
}

// DecodeFile reads and decodes one image file.
func (d Decoder) DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	img, err := d.Decode(data)
	return img, errors.Wrapf(err, "decoding %s", path)
}

// Decode decodes JPEG bytes and converts the pixels to RGBA.
func (d Decoder) Decode(data []byte) (*image.RGBA, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if d.TargetWidth > 0 && d.TargetHeight > 0 {
		img = resize.Resize(uint(d.TargetWidth), uint(d.TargetHeight), img, resize.Lanczos3)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba, nil
}
