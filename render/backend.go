// Package render implements the CPU compositing backend: layer-tree
// traversal, clipping runs, effect staging and the final fold into the
// destination pixmap. The GPU backend reuses this package's traversal
// and replaces only the fold.
package render

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/pool"
)

// Backend is the CPU renderer. It owns a surface pool sized for
// interactive re-rendering; create one per rendering goroutine.
type Backend struct {
	surfaces *pool.Pool[*Surface]
	disposed bool
}

// compile-time interface check
var _ compose.Renderer = (*Backend)(nil)

// New creates a CPU backend.
func New() *Backend {
	return &Backend{surfaces: newSurfacePool()}
}

// Render implements compose.Renderer.
func (b *Backend) Render(doc *compose.Document, dst *compose.Pixmap, opts compose.RenderOptions) error {
	if b.disposed {
		return compose.ErrDisposed
	}
	if doc == nil || dst == nil || dst.Empty() {
		return nil
	}

	PaintBackground(dst, opts.Background)
	return b.Composite(doc, pixmapSink{dst}, dst.Width(), dst.Height(), &opts)
}

// Dispose implements compose.Renderer.
func (b *Backend) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.surfaces.Dispose()
}

// PaintBackground fills dst with the configured backdrop.
func PaintBackground(dst *compose.Pixmap, bg compose.Background) {
	switch bg {
	case compose.BackgroundWhite:
		dst.Fill(compose.White)
	case compose.BackgroundBlack:
		dst.Fill(compose.Black)
	case compose.BackgroundCheckerboard:
		paintCheckerboard(dst)
	default:
		dst.Clear()
	}
}

func paintCheckerboard(dst *compose.Pixmap) {
	w, h := dst.Width(), dst.Height()
	data := dst.Data()

	light := pixelBytes(compose.CheckerLight)
	dark := pixelBytes(compose.CheckerDark)

	for y := 0; y < h; y++ {
		ty := y / compose.CheckerTileSize
		row := y * w * 4
		for x := 0; x < w; x++ {
			px := light
			if (x/compose.CheckerTileSize+ty)%2 == 1 {
				px = dark
			}
			copy(data[row+x*4:row+x*4+4], px[:])
		}
	}
}

func pixelBytes(c compose.RGBA) [4]uint8 {
	return [4]uint8{
		uint8(c.R*255 + 0.5),
		uint8(c.G*255 + 0.5),
		uint8(c.B*255 + 0.5),
		uint8(c.A*255 + 0.5),
	}
}
