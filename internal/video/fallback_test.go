package video

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func writeFrameFile(t *testing.T, dir string, n int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(framePath(dir, n))
	if err != nil {
		t.Fatalf("create frame file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode frame file: %v", err)
	}
}

func testFallbackBackend(t *testing.T, samples int, duration float64) *fallbackBackend {
	t.Helper()
	dir := t.TempDir()
	return &fallbackBackend{
		eng:      &Engine{},
		dir:      dir,
		duration: duration,
		interval: duration / float64(samples),
		samples:  samples,
		cleanup:  func() {},
	}
}

func TestFallbackFrameReadsAndDeletes(t *testing.T) {
	b := testFallbackBackend(t, 10, 100)
	writeFrameFile(t, b.dir, 1, color.RGBA{R: 255, A: 255})
	writeFrameFile(t, b.dir, 2, color.RGBA{G: 255, A: 255})

	// Sample index 0 maps to frame 1.
	img, err := b.Frame(context.Background(), 0)
	if err != nil {
		t.Fatalf("Frame returned error: %v", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("frame 1 red channel = %d, want 255", r>>8)
	}

	// The consumed frame file must be gone.
	if _, err := os.Stat(framePath(b.dir, 1)); !os.IsNotExist(err) {
		t.Error("frame 1 file still present after read")
	}

	// Sample index 1 (ts = interval) maps to frame 2.
	img, err = b.Frame(context.Background(), b.interval)
	if err != nil {
		t.Fatalf("Frame returned error: %v", err)
	}
	_, g, _, _ := img.At(0, 0).RGBA()
	if g>>8 != 255 {
		t.Errorf("frame 2 green channel = %d, want 255", g>>8)
	}
}

func TestFallbackFrameMissingNumber(t *testing.T) {
	b := testFallbackBackend(t, 10, 100)
	// The engine produced no frame 1: an ordinary error, which the
	// scheduler turns into the sentinel colour.
	if _, err := b.Frame(context.Background(), 0); err == nil {
		t.Fatal("Frame expected error for missing sequence number")
	}
}

func TestFallbackFrameOverrunCap(t *testing.T) {
	b := testFallbackBackend(t, 10, 100)
	// A timestamp mapping past samples+cap must never be read.
	ts := b.interval * float64(b.samples+frameOverrunCap+5)
	if _, err := b.Frame(context.Background(), ts); err == nil {
		t.Fatal("Frame expected error beyond the overrun cap")
	}
}

func TestFallbackFrameHonoursCancelledContext(t *testing.T) {
	b := testFallbackBackend(t, 10, 100)
	writeFrameFile(t, b.dir, 1, color.RGBA{A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Frame(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("Frame error = %v, want context.Canceled", err)
	}
}
