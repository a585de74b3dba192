package blend

import "github.com/gogpu/compose"

// Draw composites src onto dst at (dx, dy) with the given mode and
// opacity. Regions outside dst are clipped; zero-area inputs are no-ops.
func Draw(dst, src *compose.Pixmap, dx, dy int, mode compose.BlendMode, opacity float64) {
	drawWith(dst, src, dx, dy, mode, opacity, nil, false)
}

// DrawMasked is Draw with the source alpha additionally modulated by an
// alpha mask positioned in dst (document) space. Mask coordinates outside
// the mask yield zero coverage; out-of-range coordinates are clipped
// defensively, never an error.
func DrawMasked(dst, src *compose.Pixmap, dx, dy int, mode compose.BlendMode, opacity float64, mask *compose.AlphaMask) {
	drawWith(dst, src, dx, dy, mode, opacity, mask, false)
}

// DrawClipped composites src confined to dst's existing alpha footprint
// (source-atop): the result keeps dst's alpha, so nothing is deposited
// where dst is transparent and a semi-transparent footprint never gains
// coverage. This is the clipping-group confinement step.
func DrawClipped(dst, src *compose.Pixmap, dx, dy int, mode compose.BlendMode, opacity float64) {
	drawWith(dst, src, dx, dy, mode, opacity, nil, true)
}

func drawWith(dst, src *compose.Pixmap, dx, dy int, mode compose.BlendMode, opacity float64, mask *compose.AlphaMask, clipToDst bool) {
	if dst.Empty() || src.Empty() || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	srcW, srcH := src.Width(), src.Height()
	dstW, dstH := dst.Width(), dst.Height()
	srcData := src.Data()
	dstData := dst.Data()

	x0, y0 := dx, dy
	x1, y1 := dx+srcW, dy+srcH
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > dstW {
		x1 = dstW
	}
	if y1 > dstH {
		y1 = dstH
	}

	for y := y0; y < y1; y++ {
		sy := y - dy
		srcRow := (sy*srcW - dx) * 4
		dstRow := y * dstW * 4
		for x := x0; x < x1; x++ {
			si := srcRow + x*4
			sa := float64(srcData[si+3]) / 255 * opacity
			if mask != nil {
				sa *= float64(mask.AlphaAt(x, y)) / 255
			}

			di := dstRow + x*4
			da := float64(dstData[di+3]) / 255
			if sa == 0 || (clipToDst && da == 0) {
				continue
			}

			s := compose.RGBA{
				R: float64(srcData[si+0]) / 255,
				G: float64(srcData[si+1]) / 255,
				B: float64(srcData[si+2]) / 255,
				A: sa,
			}
			d := compose.RGBA{
				R: float64(dstData[di+0]) / 255,
				G: float64(dstData[di+1]) / 255,
				B: float64(dstData[di+2]) / 255,
				A: da,
			}

			var out compose.RGBA
			if clipToDst {
				out = Atop(mode, d, s)
			} else {
				out = Over(mode, d, s)
			}

			dstData[di+0] = uint8(out.R*255 + 0.5)
			dstData[di+1] = uint8(out.G*255 + 0.5)
			dstData[di+2] = uint8(out.B*255 + 0.5)
			dstData[di+3] = uint8(out.A*255 + 0.5)
		}
	}
}
