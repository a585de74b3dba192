// Package compose implements a layer-tree compositor for layered image
// documents.
//
// # Overview
//
// A Document is a tree of raster, text, and group layers. Each layer
// carries opacity, one of 16 blend modes, an optional alpha mask, an
// optional clipping-mask flag, and a stack of layer effects (stroke, drop
// shadow, outer glow, inner shadow, inner glow, color overlay, gradient
// overlay, bevel/emboss). The compositor walks the tree bottom-to-top and
// renders the composed result into a caller-supplied Pixmap on every
// interactive frame.
//
// # Backends
//
// Two backends implement the Renderer contract:
//   - render.Backend: the CPU rasterizer. Always available.
//   - gpu.Backend: a wgpu-based pipeline that folds layer contributions
//     into a storage-buffer backdrop through a shared blend compute
//     shader. It falls back to the CPU backend permanently if GPU
//     initialization fails.
//
// Both backends produce visually equivalent output; the blend-mode table
// is shared between them (as Go code for the CPU, as WGSL for the GPU).
//
// # Quick Start
//
//	doc := compose.NewDocument(800, 600)
//	doc.Root.Children = append(doc.Root.Children, layer)
//
//	dst := compose.NewPixmap(800, 600)
//	r := render.New()
//	defer r.Dispose()
//	r.Render(doc, dst, compose.DefaultRenderOptions())
//
// # Threading
//
// Rendering is single-threaded, synchronous and non-reentrant per output
// surface. The Document tree must not be mutated while a render call is in
// flight; the compositor never mutates it.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X right, Y down. The Viewport maps document
// space to screen space as screen = document*zoom + offset.
package compose

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
