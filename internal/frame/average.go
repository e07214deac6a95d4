// Package frame reduces decoded raster frames to single colours.
package frame

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/KartikeyaKotkar/palette-cut/internal/colour"
)

// Average reduces a raster to one colour: the arithmetic mean of every
// pixel's R, G and B channels, each rounded to nearest integer. Alpha
// is ignored. An empty raster is an error; the pipeline always supplies
// frames at a fixed non-zero capture size.
func Average(img image.Image) (colour.RGB, error) {
	if img == nil {
		return colour.RGB{}, fmt.Errorf("cannot average a nil frame")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return colour.RGB{}, fmt.Errorf("cannot average an empty frame")
	}

	var r, g, b uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; keep full precision in the
			// accumulators and convert once at the end.
			r += uint64(pr >> 8)
			g += uint64(pg >> 8)
			b += uint64(pb >> 8)
		}
	}

	n := uint64(bounds.Dx() * bounds.Dy())
	return colour.RGB{
		R: roundedMean(r, n),
		G: roundedMean(g, n),
		B: roundedMean(b, n),
	}, nil
}

func roundedMean(sum, n uint64) uint8 {
	return uint8((sum + n/2) / n)
}

// Downsample rescales a raster to the given size. Backends normally
// scale in the decode engine; this is the guard path for frames that
// arrive larger than the capture size, and it also serves the ribbon
// renderer.
func Downsample(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
