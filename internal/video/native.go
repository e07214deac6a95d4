package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // decode engine frame payloads
	_ "image/png"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// nativeBackend seeks directly to each target timestamp and decodes a
// single frame, scaled to the capture size inside the engine. Fast,
// but it needs a container the structured probe recognizes and a
// finite reported duration.
type nativeBackend struct {
	eng      *Engine
	path     string
	duration float64
	size     int
	cleanup  func()
}

// openNative probes the source and prepares the seek path. It returns
// ErrUnsupportedFormat or ErrDurationUnknown without decoding any
// frame when the input does not qualify; the selector falls back on
// exactly those errors.
func openNative(ctx context.Context, src Source, size int) (Backend, error) {
	if size <= 0 {
		return nil, fmt.Errorf("native decode needs a positive frame size, got %d", size)
	}

	eng, err := SharedEngine()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := eng.materialize(src)
	if err != nil {
		return nil, err
	}

	result, err := eng.probe(ctx, path)
	if err != nil {
		cleanup()
		return nil, err
	}
	if !result.hasVideo() {
		cleanup()
		return nil, ErrUnsupportedFormat
	}

	duration := result.durationSeconds()
	if duration <= 0 {
		cleanup()
		return nil, ErrDurationUnknown
	}

	return &nativeBackend{
		eng:      eng,
		path:     path,
		duration: duration,
		size:     size,
		cleanup:  cleanup,
	}, nil
}

func (b *nativeBackend) Duration() float64 {
	return b.duration
}

func (b *nativeBackend) Frame(ctx context.Context, ts float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.eng.mu.Lock()
	defer b.eng.mu.Unlock()

	buf := new(bytes.Buffer)
	err := ffmpeg.Input(b.path, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", ts)}).
		Output("pipe:", ffmpeg.KwArgs{
			"vframes": 1,
			"vf":      fmt.Sprintf("scale=%d:%d", b.size, b.size),
			"format":  "image2",
			"vcodec":  "png",
		}).
		WithOutput(buf).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("seek decode at %.3fs: %w", ts, err)
	}

	img, _, err := image.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decode frame at %.3fs: %w", ts, err)
	}
	return img, nil
}

func (b *nativeBackend) Close() error {
	b.cleanup()
	return nil
}
