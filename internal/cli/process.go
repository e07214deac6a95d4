package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/KartikeyaKotkar/palette-cut/internal/colour"
	"github.com/KartikeyaKotkar/palette-cut/internal/ribbon"
	"github.com/KartikeyaKotkar/palette-cut/internal/sampler"
	"github.com/KartikeyaKotkar/palette-cut/internal/video"
)

var (
	// Process command flags
	processSamples      int
	processSize         int
	processFormat       string
	processOutput       string
	processPreview      bool
	processRibbon       string
	processRibbonWidth  int
	processRibbonHeight int
	processYes          bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <video>",
	Short: "Sample a video's colours and analyse them",
	Long: `Sample frames evenly across a video's duration and analyse the
resulting colour sequence.

Each sampled frame is downscaled and reduced to its average colour; the
ordered sequence is then clustered to find the dominant, average and
least-used colours. Frames that fail to decode degrade to black rather
than aborting the run.

Examples:
  # Analyse a video with the default 240 samples
  palette-cut process movie.mkv

  # Print every sampled colour as hex, with terminal swatches
  palette-cut process --format hex --preview movie.mkv

  # Full results as JSON, saved to a file
  palette-cut process -f json -o result.json movie.mkv

  # Also export the colour ribbon as a PNG
  palette-cut process --ribbon ribbon.png movie.mkv

  # Non-interactive run that pre-approves large fallback decodes
  palette-cut process --yes movie.wmv`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	bindProcessFlags(processCmd.Flags())
}

func bindProcessFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&processSamples, "samples", "n", sampler.DefaultSampleCount, "number of frames to sample across the video")
	fs.IntVar(&processSize, "size", sampler.DefaultFrameSize, "capture raster size in pixels (frames are downscaled to size x size)")
	fs.StringVarP(&processFormat, "format", "f", "table", "output format (table, hex, rgb, json)")
	fs.StringVarP(&processOutput, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&processPreview, "preview", false, "show colour previews in terminal")
	fs.StringVar(&processRibbon, "ribbon", "", "write the colour ribbon as a PNG to this path")
	fs.IntVar(&processRibbonWidth, "ribbon-width", 0, "ribbon width in pixels (default: one pixel per sample)")
	fs.IntVar(&processRibbonHeight, "ribbon-height", ribbon.DefaultHeight, "ribbon height in pixels")
	fs.BoolVarP(&processYes, "yes", "y", false, "pre-approve the large-input fallback confirmation")
}

// runProcess executes the process command.
func runProcess(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	info, err := os.Stat(videoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("video file not found: %s", videoPath)
		}
		return fmt.Errorf("failed to stat video file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", videoPath)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	logger := newLogger(cmd)

	var bar *progressbar.ProgressBar
	progress := func(int) {}
	if !quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("sampling"),
			progressbar.OptionClearOnFinish(),
		)
		progress = func(p int) { _ = bar.Set(p) }
	}

	src := video.Source{Path: videoPath, Size: info.Size()}
	seq, err := sampler.Process(cmd.Context(), src, sampler.Options{
		SampleCount: processSamples,
		FrameSize:   processSize,
		Progress:    progress,
		Confirm:     confirmLargeFallback,
		Logger:      logger,
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}

	analysis, err := colour.Analyze(seq)
	if err != nil {
		return fmt.Errorf("failed to analyse colours: %w", err)
	}

	output, err := formatResult(seq, analysis, processFormat, processPreview)
	if err != nil {
		return err
	}

	if processRibbon != "" {
		if err := writeRibbon(processRibbon, seq); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Wrote ribbon to %s\n", processRibbon)
		}
	}

	// Write output to file or stdout
	if processOutput != "" {
		if err := os.WriteFile(processOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Wrote analysis to %s\n", processOutput)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

// confirmLargeFallback asks before the memory-intensive software
// decode of a large input. Pre-approved by --yes; declines when stdin
// is not interactive.
func confirmLargeFallback(sizeBytes int64) bool {
	if processYes {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Fprintf(os.Stderr, "Input is %s and needs the software decode fallback, which is memory-intensive. Continue? [y/N] ",
		humanize.IBytes(uint64(sizeBytes)))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func writeRibbon(path string, seq []colour.RGB) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ribbon file: %w", err)
	}
	defer f.Close()

	if err := ribbon.WritePNG(f, seq, processRibbonWidth, processRibbonHeight); err != nil {
		return fmt.Errorf("failed to write ribbon: %w", err)
	}
	return nil
}
