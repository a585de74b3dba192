// Package text turns text layers into pixel silhouettes: it parses
// fonts, shapes lines with HarfBuzz-grade shaping, and rasterizes the
// positioned glyph outlines.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/compose/cache"
)

// ErrEmptyFontData indicates an empty font payload.
var ErrEmptyFontData = errors.New("text: empty font data")

// Source is a parsed font, usable both for shaping (go-text) and for
// outline rasterization (sfnt). Source is heavyweight; share it across
// layers and sizes.
type Source struct {
	data   []byte
	sfnt   *opentype.Font
	shaped *gtfont.Font
	name   string
}

// ParseFont parses TTF or OTF font data. The data slice is copied and
// can be reused by the caller.
func ParseFont(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}

	s := &Source{data: dataCopy, sfnt: parsed, shaped: face.Font}
	if name, err := parsed.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// Name returns the font family name, empty when the font carries none.
func (s *Source) Name() string { return s.name }

// sources caches parsed fonts keyed by a content hash, so documents
// that embed the same font bytes in many layers parse them once.
var sources = cache.NewSharded[uint64, *Source](8, cache.Uint64Hasher)

// CachedSource returns a shared Source for the font data.
func CachedSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	key := h.Sum64()

	if s, ok := sources.Get(key); ok {
		return s, nil
	}
	s, err := ParseFont(data)
	if err != nil {
		return nil, err
	}
	sources.Set(key, s)
	return s, nil
}

// metrics returns the font metrics at the given pixel size.
func (s *Source) metrics(size float64) font.Metrics {
	var buf sfnt.Buffer
	m, err := s.sfnt.Metrics(&buf, fixed.Int26_6(size*64), font.HintingFull)
	if err != nil {
		return font.Metrics{}
	}
	return m
}

// glyphIndex returns the glyph for a rune, 0 when missing.
func (s *Source) glyphIndex(r rune) sfnt.GlyphIndex {
	var buf sfnt.Buffer
	gid, err := s.sfnt.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return gid
}

// glyphAdvance returns the advance width of a glyph in pixels.
func (s *Source) glyphAdvance(gid sfnt.GlyphIndex, size float64) float64 {
	var buf sfnt.Buffer
	adv, err := s.sfnt.GlyphAdvance(&buf, gid, fixed.Int26_6(size*64), font.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
