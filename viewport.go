package compose

// Zoom limits for a Viewport.
const (
	MinZoom = 0.01
	MaxZoom = 64.0
)

// Rect is an axis-aligned rectangle in document space.
type Rect struct {
	X, Y, W, H float64
}

// Viewport maps between screen space and document space.
//
// The forward transform is screen = document*zoom + offset. Viewport owns
// only zoom, pan offset and viewport pixel size; it is pure state with
// deterministic math and no side effects.
type Viewport struct {
	zoom    float64
	offsetX float64
	offsetY float64
	width   int
	height  int
}

// NewViewport creates a viewport of the given pixel size at zoom 1.
func NewViewport(width, height int) *Viewport {
	return &Viewport{zoom: 1, width: width, height: height}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Offset returns the current screen-space pan offset.
func (v *Viewport) Offset() Point { return Point{X: v.offsetX, Y: v.offsetY} }

// Size returns the viewport pixel size.
func (v *Viewport) Size() (w, h int) { return v.width, v.height }

// SetSize updates the viewport pixel size. Zoom and offset are untouched.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetOffset sets the screen-space pan offset directly.
func (v *Viewport) SetOffset(x, y float64) {
	v.offsetX = x
	v.offsetY = y
}

// Pan shifts the pan offset by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
//
// When an anchor screen point is given, the pan offset is recomputed so
// that the document point under the anchor stays under it across the zoom
// change ("zoom toward cursor").
func (v *Viewport) SetZoom(zoom float64, anchor ...Point) {
	zoom = clampZoom(zoom)

	if len(anchor) > 0 {
		a := anchor[0]
		doc := v.ScreenToDocument(a)
		v.zoom = zoom
		v.offsetX = a.X - doc.X*zoom
		v.offsetY = a.Y - doc.Y*zoom
		return
	}

	v.zoom = zoom
}

// ScreenToDocument converts a screen-space point to document space.
func (v *Viewport) ScreenToDocument(p Point) Point {
	return Point{
		X: (p.X - v.offsetX) / v.zoom,
		Y: (p.Y - v.offsetY) / v.zoom,
	}
}

// DocumentToScreen converts a document-space point to screen space.
// It is the exact inverse of ScreenToDocument.
func (v *Viewport) DocumentToScreen(p Point) Point {
	return Point{
		X: p.X*v.zoom + v.offsetX,
		Y: p.Y*v.zoom + v.offsetY,
	}
}

// FitToWindow picks the largest zoom at which the whole document fits in
// the viewport, clamped to the zoom limits, and centers the document.
func (v *Viewport) FitToWindow(docWidth, docHeight float64) {
	if docWidth <= 0 || docHeight <= 0 || v.width <= 0 || v.height <= 0 {
		return
	}
	sx := float64(v.width) / docWidth
	sy := float64(v.height) / docHeight
	v.zoom = clampZoom(min(sx, sy))
	v.center(docWidth, docHeight)
}

// ZoomToActual resets zoom to 1:1 and centers the document.
func (v *Viewport) ZoomToActual(docWidth, docHeight float64) {
	v.zoom = 1
	v.center(docWidth, docHeight)
}

// VisibleArea returns the document-space rectangle currently visible on
// screen, derived by inverse-transforming the viewport corners.
func (v *Viewport) VisibleArea() Rect {
	tl := v.ScreenToDocument(Point{X: 0, Y: 0})
	br := v.ScreenToDocument(Point{X: float64(v.width), Y: float64(v.height)})
	return Rect{
		X: tl.X,
		Y: tl.Y,
		W: br.X - tl.X,
		H: br.Y - tl.Y,
	}
}

// Transform returns the document-to-screen transform as a Matrix.
//
// devicePixelRatio is the ratio between the output surface's backing
// resolution and its logical size; zoom and offset are both scaled by it
// so rendering stays sharp on high-DPI surfaces. Pass 1 for 1:1 surfaces.
func (v *Viewport) Transform(devicePixelRatio float64) Matrix {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	z := v.zoom * devicePixelRatio
	return Matrix{
		A: z, B: 0, C: v.offsetX * devicePixelRatio,
		D: 0, E: z, F: v.offsetY * devicePixelRatio,
	}
}

func (v *Viewport) center(docWidth, docHeight float64) {
	v.offsetX = (float64(v.width) - docWidth*v.zoom) / 2
	v.offsetY = (float64(v.height) - docHeight*v.zoom) / 2
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
