// Package sampler drives temporal sampling of a video source,
// producing one averaged colour per evenly spaced timestamp.
package sampler

import (
	"context"
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/KartikeyaKotkar/palette-cut/internal/colour"
	"github.com/KartikeyaKotkar/palette-cut/internal/frame"
	"github.com/KartikeyaKotkar/palette-cut/internal/video"
)

const (
	// DefaultSampleCount is the number of frames sampled across the
	// video's duration.
	DefaultSampleCount = 240

	// DefaultFrameSize is the square capture raster size in pixels.
	DefaultFrameSize = 32

	// endMargin keeps the final seeks safely short of end-of-stream.
	endMargin = 0.1
)

// Options configures a sampling run.
type Options struct {
	// SampleCount is the target number of samples. Defaults to
	// DefaultSampleCount when zero.
	SampleCount int

	// FrameSize is the capture raster size. Defaults to
	// DefaultFrameSize when zero.
	FrameSize int

	// Progress receives integer percent values in [0,100] after every
	// sample. Values are non-decreasing and the final call is exactly
	// 100. Nil disables reporting.
	Progress func(percent int)

	// Confirm is consulted before a fallback decode of inputs larger
	// than video.LargeFallbackBytes. Nil declines.
	Confirm func(sizeBytes int64) bool

	// Logger receives per-frame diagnostics. Nil disables logging.
	Logger hclog.Logger
}

// job is the per-invocation sampling state. Created at invocation
// start, mutated only by the sampling loop, discarded when the run
// ends.
type job struct {
	backend  video.Backend
	duration float64
	interval float64
	total    int
	seq      []colour.RGB
}

// Test seam for backend selection.
var openBackend = video.Open

// Process samples opts.SampleCount frames evenly across the source's
// duration and returns their averaged colours in temporal order.
//
// Individual frame failures degrade to sentinel black and never abort
// the run, so a successful return always carries exactly
// opts.SampleCount entries. Job-level failures release all resources
// and return no partial sequence. Cancel the context to abort between
// frames; frames are sampled strictly sequentially because decode is
// stateful on a single video handle.
func Process(ctx context.Context, src video.Source, opts Options) ([]colour.RGB, error) {
	if opts.SampleCount <= 0 {
		opts.SampleCount = DefaultSampleCount
	}
	if opts.FrameSize <= 0 {
		opts.FrameSize = DefaultFrameSize
	}
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	backend, err := openBackend(ctx, src, video.OpenOptions{
		SampleCount:          opts.SampleCount,
		FrameSize:            opts.FrameSize,
		ConfirmLargeFallback: opts.Confirm,
		Logger:               log,
	})
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	duration := backend.Duration()
	if duration <= 0 || math.IsInf(duration, 0) || math.IsNaN(duration) {
		// Guarded before any seek is attempted.
		return nil, video.ErrDurationUnknown
	}

	j := &job{
		backend:  backend,
		duration: duration,
		interval: duration / float64(opts.SampleCount),
		total:    opts.SampleCount,
		seq:      make([]colour.RGB, 0, opts.SampleCount),
	}

	for i := 0; i < j.total; i++ {
		// Cancellation point before each seek.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ts := targetTimestamp(i, j.interval, j.duration)
		c, err := j.sample(ctx, ts)
		if err != nil {
			// Per-frame failures are non-fatal: substitute the
			// sentinel so the sequence keeps its length and order.
			log.Warn("frame capture failed, substituting black", "index", i, "timestamp", ts, "error", err)
			c = colour.RGB{}
		}
		j.seq = append(j.seq, c)

		if opts.Progress != nil {
			opts.Progress(percent(i+1, j.total))
		}
	}

	return j.seq, nil
}

func (j *job) sample(ctx context.Context, ts float64) (colour.RGB, error) {
	img, err := j.backend.Frame(ctx, ts)
	if err != nil {
		return colour.RGB{}, err
	}
	return frame.Average(img)
}

// targetTimestamp returns the seek target for sample index i:
// interval*i, clamped below the duration by the end-of-stream margin.
func targetTimestamp(i int, interval, duration float64) float64 {
	ts := interval * float64(i)
	if limit := duration - endMargin; ts > limit {
		ts = limit
	}
	if ts < 0 {
		ts = 0
	}
	return ts
}

// percent maps completed samples to an integer percentage. 100 is
// reported only by the final sample, so rounding never announces
// completion early.
func percent(done, total int) int {
	p := int(math.Round(100 * float64(done) / float64(total)))
	if done < total && p > 99 {
		p = 99
	}
	return p
}
