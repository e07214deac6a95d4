// Package video abstracts over the decode strategies used to pull
// raster frames out of a video stream at chosen timestamps.
package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
)

// Backend is the capability shared by the decode strategies: given the
// opened video and a target timestamp, produce a raster frame at the
// configured capture size. Implementations are stateful per video
// handle and must not be used from concurrent goroutines.
type Backend interface {
	// Duration returns the video duration in seconds. Always finite
	// and positive for a successfully opened backend.
	Duration() float64

	// Frame decodes the frame nearest the given timestamp (seconds).
	// A frame-level failure is returned as an ordinary error; callers
	// recover locally rather than aborting the job.
	Frame(ctx context.Context, ts float64) (image.Image, error)

	// Close releases every resource held for the job. Safe to call on
	// every exit path.
	Close() error
}

// Source supplies the video bytes. Either Path points at a local file,
// or Reader streams the bytes and the engine spools them to scratch
// storage. Size is used for the large-input confirmation gate and may
// be zero when unknown.
type Source struct {
	Path   string
	Reader io.Reader
	Size   int64
}

var (
	// ErrDurationUnknown reports that the stream's duration is
	// missing, zero or infinite.
	ErrDurationUnknown = errors.New("video duration unknown")

	// ErrUnsupportedFormat reports a container or codec the native
	// decode path cannot play.
	ErrUnsupportedFormat = errors.New("unsupported video format")

	// ErrUserCancelled reports that the user declined the large-input
	// fallback confirmation.
	ErrUserCancelled = errors.New("cancelled by user")
)

// EngineError wraps a fatal failure to load or run the decode engine.
// Engine errors abort the whole job and are surfaced to the caller.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("decode engine: %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
