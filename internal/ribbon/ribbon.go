// Package ribbon renders a sampled colour sequence as an image: one
// vertical stripe per sample, left to right in temporal order.
package ribbon

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/KartikeyaKotkar/palette-cut/internal/colour"
	"github.com/KartikeyaKotkar/palette-cut/internal/frame"
)

// DefaultHeight is the ribbon height in pixels.
const DefaultHeight = 48

// Render draws the sequence as a width x height image. Stripes keep
// the sequence order; width defaults to one pixel per sample when
// zero, height to DefaultHeight.
func Render(seq []colour.RGB, width, height int) (image.Image, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("cannot render an empty colour sequence")
	}
	if height <= 0 {
		height = DefaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, len(seq), height))
	for x, c := range seq {
		for y := 0; y < height; y++ {
			img.Set(x, y, c.Color())
		}
	}

	if width > 0 && width != len(seq) {
		return frame.Downsample(img, width, height), nil
	}
	return img, nil
}

// WritePNG renders the sequence and encodes it as PNG.
func WritePNG(w io.Writer, seq []colour.RGB, width, height int) error {
	img, err := Render(seq, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode ribbon: %w", err)
	}
	return nil
}
