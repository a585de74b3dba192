package text

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/blend"
)

// drawGlyph rasterizes one glyph outline and composites it onto dst with
// the pen at (penX, penY) on the baseline. Missing glyphs draw nothing.
func (s *Source) drawGlyph(dst *compose.Pixmap, gid sfnt.GlyphIndex, size, penX, penY float64, col compose.RGBA) {
	var buf sfnt.Buffer
	segs, err := s.sfnt.LoadGlyph(&buf, gid, fixed.Int26_6(size*64), nil)
	if err != nil || len(segs) == 0 {
		return
	}

	minX, minY, maxX, maxY := segmentBounds(segs)
	if minX > maxX {
		return
	}

	// Snap the mask to the pixel grid around the pen position.
	x0 := int(math.Floor(penX + minX))
	y0 := int(math.Floor(penY + minY))
	w := int(math.Ceil(penX+maxX)) - x0
	h := int(math.Ceil(penY+maxY)) - y0
	if w <= 0 || h <= 0 {
		return
	}

	// Glyph coordinates are baseline-relative; shift them into the mask.
	tx := penX - float64(x0)
	ty := penY - float64(y0)

	r := vector.NewRasterizer(w, h)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(segPoint(seg.Args[0], tx, ty))
		case sfnt.SegmentOpLineTo:
			r.LineTo(segPoint(seg.Args[0], tx, ty))
		case sfnt.SegmentOpQuadTo:
			cx, cy := segPoint(seg.Args[0], tx, ty)
			px, py := segPoint(seg.Args[1], tx, ty)
			r.QuadTo(cx, cy, px, py)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := segPoint(seg.Args[0], tx, ty)
			c2x, c2y := segPoint(seg.Args[1], tx, ty)
			px, py := segPoint(seg.Args[2], tx, ty)
			r.CubeTo(c1x, c1y, c2x, c2y, px, py)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	// Tint the coverage with the fill color and composite source-over.
	tinted := compose.NewPixmap(w, h)
	data := tinted.Data()
	cr := uint8(clampChannel(col.R))
	cg := uint8(clampChannel(col.G))
	cb := uint8(clampChannel(col.B))
	for i, a := range mask.Pix {
		if a == 0 {
			continue
		}
		av := float64(a) / 255 * col.A
		di := i * 4
		data[di+0] = cr
		data[di+1] = cg
		data[di+2] = cb
		data[di+3] = uint8(av*255 + 0.5)
	}
	blend.Draw(dst, tinted, x0, y0, compose.BlendNormal, 1)
}

func segPoint(p fixed.Point26_6, tx, ty float64) (float32, float32) {
	return float32(fixedToFloat(p.X) + tx), float32(fixedToFloat(p.Y) + ty)
}

func segmentBounds(segs sfnt.Segments) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	args := [...]int{
		sfnt.SegmentOpMoveTo: 1,
		sfnt.SegmentOpLineTo: 1,
		sfnt.SegmentOpQuadTo: 2,
		sfnt.SegmentOpCubeTo: 3,
	}
	for _, seg := range segs {
		n := args[seg.Op]
		for i := 0; i < n; i++ {
			x := fixedToFloat(seg.Args[i].X)
			y := fixedToFloat(seg.Args[i].Y)
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
	}
	return minX, minY, maxX, maxY
}

func clampChannel(v float64) float64 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v*255 + 0.5
}
