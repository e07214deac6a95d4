package video

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
)

// LargeFallbackBytes is the input size above which the fallback path
// requires explicit confirmation before decoding. Fallback extraction
// is the memory- and scratch-hungry path.
const LargeFallbackBytes = 1 << 30

// OpenOptions configures backend selection.
type OpenOptions struct {
	// SampleCount is the number of frames the caller will request.
	// The fallback extraction pass needs it up front to derive its
	// output frame rate.
	SampleCount int

	// FrameSize is the square capture raster size in pixels.
	FrameSize int

	// ConfirmLargeFallback is consulted before falling back on inputs
	// larger than LargeFallbackBytes. A nil hook declines.
	ConfirmLargeFallback func(sizeBytes int64) bool

	// Logger receives selection decisions. Nil disables logging.
	Logger hclog.Logger
}

// Test seams for the concrete strategies.
var (
	nativeOpener   = openNative
	fallbackOpener = openFallback
)

// Open selects a decode backend for the source: the native seek path
// is always attempted first, and only an unsupported format or an
// undeterminable duration switches to the software fallback pass. Any
// other error class propagates unchanged.
func Open(ctx context.Context, src Source, opts OpenOptions) (Backend, error) {
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	backend, err := nativeOpener(ctx, src, opts.FrameSize)
	if err == nil {
		log.Debug("using native seek decode", "duration", backend.Duration())
		return backend, nil
	}
	if !errors.Is(err, ErrUnsupportedFormat) && !errors.Is(err, ErrDurationUnknown) {
		return nil, err
	}
	log.Debug("native decode rejected input, falling back", "reason", err)

	if src.Size > LargeFallbackBytes {
		if opts.ConfirmLargeFallback == nil || !opts.ConfirmLargeFallback(src.Size) {
			return nil, ErrUserCancelled
		}
	}

	backend, err = fallbackOpener(ctx, src, opts.SampleCount, opts.FrameSize)
	if err != nil {
		return nil, err
	}
	log.Debug("using software fallback decode", "duration", backend.Duration())
	return backend, nil
}
