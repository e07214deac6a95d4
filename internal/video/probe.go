package video

import (
	"context"
	"encoding/json"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// probeResult is the subset of ffprobe's JSON output the selector
// needs: stream kinds and the container duration.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeFormat struct {
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
	Size       string `json:"size"`
}

// probe inspects the container with ffprobe. A nonzero exit is
// treated as an unplayable input; a garbled JSON payload is an engine
// failure.
func (e *Engine) probe(ctx context.Context, path string) (probeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := exec.CommandContext(ctx, e.ffprobe, "-v", "error", "-hide_banner",
		"-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return probeResult{}, ErrUnsupportedFormat
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return probeResult{}, &EngineError{Op: "parse probe output", Err: err}
	}
	return result, nil
}

// hasVideo reports whether the container holds at least one video stream.
func (r probeResult) hasVideo() bool {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return true
		}
	}
	return false
}

// durationSeconds returns the container duration in seconds, or 0 when
// missing or unparseable.
func (r probeResult) durationSeconds() float64 {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return 0
	}
	return parsed
}

// durationPattern matches the HH:MM:SS.ss duration line the engine
// writes to its diagnostic log.
var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// logDuration recovers the stream duration from the engine's
// diagnostic log output, for containers the structured probe cannot
// read. Returns 0 when the log carries no duration line.
func (e *Engine) logDuration(ctx context.Context, path string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	// No output file is given, so the command exits nonzero after
	// printing stream metadata to stderr. Only the log text matters.
	cmd := exec.CommandContext(ctx, e.ffmpeg, "-hide_banner", "-i", path)
	output, _ := cmd.CombinedOutput()
	return parseLogDuration(string(output))
}

func parseLogDuration(log string) float64 {
	m := durationPattern.FindStringSubmatch(log)
	if m == nil {
		return 0
	}
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	return hours*3600 + minutes*60 + seconds
}
