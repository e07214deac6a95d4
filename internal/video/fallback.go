package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// fallbackDurationGuess substitutes for the stream duration when
	// the diagnostic-log probe finds none. A deliberately lossy guess
	// kept from the original behaviour; see DESIGN.md.
	fallbackDurationGuess = 7200.0

	// frameOverrunCap bounds how far past the requested sample count
	// numbered frames are ever read.
	frameOverrunCap = 10
)

// fallbackBackend runs one filtered extraction pass over the whole
// stream, resampling to sampleCount/duration frames per second and
// rescaling to the capture size in the same pass. Frames land as
// sequentially numbered images in engine scratch storage and each one
// is deleted as soon as it has been read.
type fallbackBackend struct {
	eng      *Engine
	dir      string
	duration float64
	interval float64
	samples  int
	cleanup  func()
}

// openFallback spools the source into the engine's filesystem, probes
// the duration from the diagnostic log (guessing when the probe comes
// up empty) and runs the extraction pass.
func openFallback(ctx context.Context, src Source, samples, size int) (Backend, error) {
	if samples <= 0 || size <= 0 {
		return nil, fmt.Errorf("fallback decode needs positive sample count and frame size, got %d/%d", samples, size)
	}

	eng, err := SharedEngine()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := eng.materialize(src)
	if err != nil {
		return nil, err
	}

	duration := eng.logDuration(ctx, path)
	if duration <= 0 {
		duration = fallbackDurationGuess
	}

	dir, err := eng.frameDir()
	if err != nil {
		cleanup()
		return nil, err
	}

	b := &fallbackBackend{
		eng:      eng,
		dir:      dir,
		duration: duration,
		interval: duration / float64(samples),
		samples:  samples,
		cleanup: func() {
			os.RemoveAll(dir)
			cleanup()
		},
	}

	if err := b.extract(ctx, path, size); err != nil {
		b.cleanup()
		return nil, &EngineError{Op: "frame extraction", Err: err}
	}
	return b, nil
}

// extract runs the single filtered pass: fps resample and rescale in
// one filter graph, numbered images out.
func (b *fallbackBackend) extract(ctx context.Context, path string, size int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.eng.mu.Lock()
	defer b.eng.mu.Unlock()

	fps := float64(b.samples) / b.duration
	return ffmpeg.Input(path).
		Filter("fps", ffmpeg.Args{strconv.FormatFloat(fps, 'f', -1, 64)}).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", size, size)}).
		Output(filepath.Join(b.dir, "frame_%05d.png"), ffmpeg.KwArgs{
			"vframes": b.samples + frameOverrunCap,
		}).
		OverWriteOutput().
		Silent(true).
		Run()
}

func (b *fallbackBackend) Duration() float64 {
	return b.duration
}

// Frame maps the timestamp back to its sequence number and reads that
// numbered image, deleting it afterwards to bound peak scratch usage.
// A missing sequence number (the engine produced fewer frames than
// requested) surfaces as an ordinary frame error for the scheduler to
// sentinel.
func (b *fallbackBackend) Frame(ctx context.Context, ts float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := int(math.Round(ts/b.interval)) + 1
	if n > b.samples+frameOverrunCap {
		return nil, fmt.Errorf("frame %d beyond extraction overrun cap", n)
	}

	b.eng.mu.Lock()
	defer b.eng.mu.Unlock()

	name := framePath(b.dir, n)
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read extracted frame %d: %w", n, err)
	}
	os.Remove(name)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame %d: %w", n, err)
	}
	return img, nil
}

func (b *fallbackBackend) Close() error {
	b.cleanup()
	return nil
}
