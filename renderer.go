package compose

import "errors"

// ErrDimensionMismatch indicates a source image and a mask (or two
// buffers required to be congruent) have different pixel dimensions at an
// explicit composition call site.
var ErrDimensionMismatch = errors.New("compose: dimension mismatch")

// ErrDisposed indicates use of a renderer or pool after Dispose.
var ErrDisposed = errors.New("compose: disposed")

// Renderer is the backend contract shared by the CPU and GPU backends.
//
// A Renderer is single-threaded and non-reentrant: one Render call must
// fully complete before another begins on the same target. The Document
// is treated as read-only for the duration of a call.
type Renderer interface {
	// Render composes the document into dst using the given options.
	// dst dimensions define the output size; the compositor never
	// resizes it.
	Render(doc *Document, dst *Pixmap, opts RenderOptions) error

	// RenderLayerThumbnail renders a single layer scaled to fit inside
	// maxSize x maxSize, preserving aspect ratio. Returns nil for an
	// unknown id or a layer with no renderable extent.
	RenderLayerThumbnail(doc *Document, id LayerID, maxSize int) (*Pixmap, error)

	// Dispose releases pooled surfaces and backend resources.
	// The renderer must not be used afterwards.
	Dispose()
}
