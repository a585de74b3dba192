package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// positionedGlyph is a shaped glyph with its pen position in pixels,
// relative to the line origin on the baseline.
type positionedGlyph struct {
	gid sfnt.GlyphIndex
	x   float64
	y   float64
}

// shaperPool pools HarfbuzzShaper instances; they carry mutable buffers
// and are not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// shapeLine shapes one visual line. Bidirectional text is first split
// into directional runs via the Unicode bidi algorithm, each run is
// shaped separately with its own direction, and the runs are laid out in
// visual order. The returned advance is the line's total width.
func (s *Source) shapeLine(line string, size float64) ([]positionedGlyph, float64) {
	if line == "" {
		return nil, 0
	}

	var glyphs []positionedGlyph
	x := 0.0
	for _, run := range visualRuns(line) {
		glyphs, x = s.shapeRun(glyphs, run.text, run.rtl, size, x)
	}
	return glyphs, x
}

func (s *Source) shapeRun(dst []positionedGlyph, run string, rtl bool, size, x float64) ([]positionedGlyph, float64) {
	runes := []rune(run)
	if len(runes) == 0 {
		return dst, x
	}

	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtfont.NewFace(s.shaped),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("und"),
	}

	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	shaperPool.Put(shaper)

	for _, g := range output.Glyphs {
		dst = append(dst, positionedGlyph{
			gid: sfnt.GlyphIndex(g.GlyphID),
			x:   x + fixedToFloat(g.XOffset),
			y:   -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.XAdvance)
	}
	return dst, x
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

type bidiRun struct {
	text string
	rtl  bool
}

// visualRuns splits a line into directional runs in visual order.
func visualRuns(line string) []bidiRun {
	var p bidi.Paragraph
	_, err := p.SetString(line)
	if err != nil {
		return []bidiRun{{text: line}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []bidiRun{{text: line}}
	}

	n := ordering.NumRuns()
	if n == 0 {
		return []bidiRun{{text: line}}
	}
	runs := make([]bidiRun, 0, n)
	for i := 0; i < n; i++ {
		run := ordering.Run(i)
		runs = append(runs, bidiRun{
			text: run.String(),
			rtl:  run.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}
