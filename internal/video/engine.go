package video

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// Engine owns the located decode binaries and the scratch directory
// the fallback path extracts into. It is a process-wide singleton:
// lazily initialized on first use, never torn down for the life of
// the process. The underlying tools are not safe for interleaved
// jobs, so all engine exec and scratch-file operations serialize on
// its mutex.
type Engine struct {
	ffmpeg  string
	ffprobe string
	scratch string

	mu sync.Mutex
}

var (
	engineOnce sync.Once
	engine     *Engine
	engineErr  error
)

// SharedEngine returns the process-wide decode engine, locating the
// decode binaries and creating the scratch root on first call.
func SharedEngine() (*Engine, error) {
	engineOnce.Do(func() {
		engine, engineErr = newEngine()
	})
	return engine, engineErr
}

func newEngine() (*Engine, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, &EngineError{Op: "locate ffmpeg", Err: err}
	}
	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, &EngineError{Op: "locate ffprobe", Err: err}
	}
	scratch, err := os.MkdirTemp("", "palette-cut-")
	if err != nil {
		return nil, &EngineError{Op: "create scratch dir", Err: err}
	}
	return &Engine{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		scratch: scratch,
	}, nil
}

// materialize returns a local filesystem path for the source, spooling
// reader-backed sources into the scratch directory. The cleanup func
// removes anything materialize created and is safe to call once on any
// exit path.
func (e *Engine) materialize(src Source) (string, func(), error) {
	if src.Path != "" {
		return src.Path, func() {}, nil
	}
	if src.Reader == nil {
		return "", nil, fmt.Errorf("video source has neither path nor reader")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	spool, err := os.CreateTemp(e.scratch, "input-*.video")
	if err != nil {
		return "", nil, &EngineError{Op: "spool input", Err: err}
	}
	if _, err := io.Copy(spool, src.Reader); err != nil {
		spool.Close()
		os.Remove(spool.Name())
		return "", nil, &EngineError{Op: "spool input", Err: err}
	}
	if err := spool.Close(); err != nil {
		os.Remove(spool.Name())
		return "", nil, &EngineError{Op: "spool input", Err: err}
	}

	path := spool.Name()
	return path, func() { os.Remove(path) }, nil
}

// frameDir creates a fresh directory under the scratch root for an
// extraction pass.
func (e *Engine) frameDir() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dir, err := os.MkdirTemp(e.scratch, "frames-")
	if err != nil {
		return "", &EngineError{Op: "create frame dir", Err: err}
	}
	return dir, nil
}

// framePath returns the path of the n-th numbered frame (1-based) in a
// frame directory.
func framePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n))
}
