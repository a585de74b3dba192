package text

import (
	"math"

	"golang.org/x/image/font"

	"github.com/gogpu/compose"
)

// Render rasterizes a text layer into a fresh pixmap sized by its
// layout extents. The pixmap origin corresponds to the layer's (X, Y)
// position in document space.
//
// Empty content or absent font data renders nothing and returns nil
// without an error; unparseable font data is an error.
func Render(layer *compose.TextLayer) (*compose.Pixmap, error) {
	if layer.Content == "" || layer.FontSize <= 0 || len(layer.FontData) == 0 {
		return nil, nil
	}

	src, err := CachedSource(layer.FontData)
	if err != nil {
		return nil, err
	}

	layout := LayoutLayer(layer, src)
	w := int(math.Ceil(layout.Width))
	h := int(math.Ceil(layout.Height))
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	dst := compose.NewPixmap(w, h)
	m := src.metrics(layer.FontSize)

	if layer.Writing == compose.WritingVerticalRL {
		renderVertical(dst, src, layer, layout, m)
	} else {
		renderHorizontal(dst, src, layer, layout, m)
	}
	return dst, nil
}

func renderHorizontal(dst *compose.Pixmap, src *Source, layer *compose.TextLayer, layout Layout, m font.Metrics) {
	size := layer.FontSize
	lineAdvance := size * LineHeightOf(layer)
	ascent := fixedToFloat(m.Ascent)

	for i, line := range layout.Lines {
		glyphs, advance := src.shapeLine(line, size)
		if len(glyphs) == 0 {
			continue
		}

		var originX float64
		switch layer.Align {
		case compose.AlignCenter:
			originX = (layout.Width - advance) / 2
		case compose.AlignRight:
			originX = layout.Width - advance
		}
		baseline := float64(i)*lineAdvance + ascent

		for _, g := range glyphs {
			src.drawGlyph(dst, g.gid, size, originX+g.x, baseline+g.y, layer.Color)
		}
	}
}

// renderVertical lays lines out as columns, right to left, with upright
// glyphs stacked one em apart.
func renderVertical(dst *compose.Pixmap, src *Source, layer *compose.TextLayer, layout Layout, m font.Metrics) {
	size := layer.FontSize
	colAdvance := size * LineHeightOf(layer)
	ascent := fixedToFloat(m.Ascent)

	for i, line := range layout.Lines {
		colX := layout.Width - float64(i+1)*colAdvance
		cell := 0
		for _, r := range line {
			gid := src.glyphIndex(r)
			if gid == 0 {
				cell++
				continue
			}
			adv := src.glyphAdvance(gid, size)
			penX := colX + (colAdvance-adv)/2
			baseline := float64(cell)*size + ascent
			src.drawGlyph(dst, gid, size, penX, baseline, layer.Color)
			cell++
		}
	}
}
