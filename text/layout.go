package text

import (
	"strings"

	"github.com/gogpu/compose"
)

// DefaultLineHeight is the line height multiplier used when a text layer
// leaves it unset.
const DefaultLineHeight = 1.2

// heuristicAdvance estimates a rune's width as a fraction of the font
// size, for sizing when no font is available for measurement.
const heuristicAdvance = 0.6

// Layout is the line breakdown and pixel extents of a text layer.
type Layout struct {
	// Lines is the content split into visual lines, wrapping applied.
	Lines []string

	// Width and Height are the surface extents in pixels.
	Width  float64
	Height float64
}

// LineHeightOf resolves a layer's effective line height multiplier.
func LineHeightOf(layer *compose.TextLayer) float64 {
	if layer.LineHeight > 0 {
		return layer.LineHeight
	}
	return DefaultLineHeight
}

// LayoutLayer splits a text layer's content into lines and computes its
// extents. With an explicit box the extents are the box and lines wrap
// to its width; otherwise the extents are estimated from line lengths.
// src may be nil, in which case wrapping measures with the heuristic
// advance instead of real glyph widths.
func LayoutLayer(layer *compose.TextLayer, src *Source) Layout {
	size := layer.FontSize
	lineHeight := LineHeightOf(layer)

	lines := strings.Split(layer.Content, "\n")
	if layer.Box != nil && layer.Box.Width > 0 {
		lines = wrapLines(lines, src, size, layer.Box.Width)
	}

	if layer.Box != nil {
		return Layout{Lines: lines, Width: layer.Box.Width, Height: layer.Box.Height}
	}

	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}

	if layer.Writing == compose.WritingVerticalRL {
		return Layout{
			Lines:  lines,
			Width:  float64(len(lines)) * size * lineHeight,
			Height: float64(longest) * size,
		}
	}
	return Layout{
		Lines:  lines,
		Width:  float64(longest) * size * heuristicAdvance,
		Height: float64(len(lines)) * size * lineHeight,
	}
}

// wrapLines greedily wraps each paragraph at word boundaries to the
// given width. A single word wider than the box gets its own line
// rather than being split.
func wrapLines(paragraphs []string, src *Source, size, width float64) []string {
	var out []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate, src, size) > width {
				out = append(out, line)
				line = word
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

// measure returns the advance width of a line in pixels.
func measure(line string, src *Source, size float64) float64 {
	if src == nil {
		return float64(len([]rune(line))) * size * heuristicAdvance
	}
	total := 0.0
	for _, r := range line {
		total += src.glyphAdvance(src.glyphIndex(r), size)
	}
	return total
}
