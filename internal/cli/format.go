package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KartikeyaKotkar/palette-cut/internal/colour"
)

// formatResult renders the sampled sequence and its analysis in the
// requested format.
func formatResult(seq []colour.RGB, analysis colour.Analysis, format string, showPreview bool) (string, error) {
	switch format {
	case "table":
		return formatTable(seq, analysis, showPreview), nil
	case "hex":
		return formatSequence(seq, showPreview, func(c colour.RGB) string { return c.Hex() }), nil
	case "rgb":
		return formatSequence(seq, showPreview, func(c colour.RGB) string { return c.CSS() }), nil
	case "json":
		out, err := resultJSON(seq, analysis)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: table, hex, rgb, json)", format)
	}
}

// formatTable renders the analysis summary as a swatch table.
func formatTable(seq []colour.RGB, analysis colour.Analysis, showPreview bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	if showPreview {
		tw.AppendHeader(table.Row{"Role", "Swatch", "Hex", "CSS"})
	} else {
		tw.AppendHeader(table.Row{"Role", "Hex", "CSS"})
	}

	rows := []struct {
		role string
		c    colour.RGB
	}{
		{"Dominant", analysis.Dominant},
		{"Average", analysis.Average},
		{"Least used", analysis.Least},
	}
	for _, r := range rows {
		if showPreview {
			tw.AppendRow(table.Row{r.role, colour.Preview(r.c, 8), r.c.Hex(), r.c.CSS()})
		} else {
			tw.AppendRow(table.Row{r.role, r.c.Hex(), r.c.CSS()})
		}
	}

	return fmt.Sprintf("%s\n%d samples\n", tw.Render(), len(seq))
}

// formatSequence renders every sampled colour, one per line, in
// temporal order.
func formatSequence(seq []colour.RGB, showPreview bool, render func(colour.RGB) string) string {
	var sb strings.Builder
	for _, c := range seq {
		if showPreview {
			sb.WriteString(colour.Preview(c, 8))
			sb.WriteString("  ")
		}
		sb.WriteString(render(c))
		sb.WriteString("\n")
	}
	return sb.String()
}

// colourJSON represents a colour in JSON output format.
type colourJSON struct {
	Hex string     `json:"hex"`
	CSS string     `json:"css"`
	RGB colour.RGB `json:"rgb"`
}

func toColourJSON(c colour.RGB) colourJSON {
	return colourJSON{Hex: c.Hex(), CSS: c.CSS(), RGB: c}
}

// analysisJSON represents the analysis summary in JSON output format.
type analysisJSON struct {
	Average  colourJSON `json:"average"`
	Dominant colourJSON `json:"dominant"`
	Least    colourJSON `json:"least"`
}

// sequenceJSON represents the whole result in JSON output format.
type sequenceJSON struct {
	SampleCount int          `json:"sample_count"`
	Samples     []string     `json:"samples"`
	Analysis    analysisJSON `json:"analysis"`
}

func resultJSON(seq []colour.RGB, analysis colour.Analysis) ([]byte, error) {
	samples := make([]string, len(seq))
	for i, c := range seq {
		samples[i] = c.Hex()
	}
	return json.MarshalIndent(sequenceJSON{
		SampleCount: len(seq),
		Samples:     samples,
		Analysis: analysisJSON{
			Average:  toColourJSON(analysis.Average),
			Dominant: toColourJSON(analysis.Dominant),
			Least:    toColourJSON(analysis.Least),
		},
	}, "", "  ")
}
