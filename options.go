package compose

// Background selects what the compositor paints under the document.
type Background uint8

const (
	// BackgroundTransparent leaves the surface fully transparent.
	BackgroundTransparent Background = iota

	// BackgroundWhite fills with opaque white.
	BackgroundWhite

	// BackgroundBlack fills with opaque black.
	BackgroundBlack

	// BackgroundCheckerboard fills with the classic two-shade 8px
	// transparency checkerboard.
	BackgroundCheckerboard
)

// CheckerTileSize is the checkerboard period in pixels.
const CheckerTileSize = 8

// Checkerboard shades.
var (
	CheckerLight = RGB(1, 1, 1)
	CheckerDark  = RGB(0.8, 0.8, 0.8)
)

// RenderOptions configures a single render pass.
//
// The zero value is NOT ready to use; start from DefaultRenderOptions and
// adjust. Options are read-only during the pass.
type RenderOptions struct {
	// Background is painted before any layer.
	Background Background

	// RenderEffects gates the whole effect pipeline.
	RenderEffects bool

	// PasteboardWidth/Height extend the rendered area beyond the canvas
	// when positive (0 means canvas size).
	PasteboardWidth  int
	PasteboardHeight int

	// HiddenLayerIDs are skipped entirely.
	HiddenLayerIDs map[LayerID]bool

	// EffectsOnlyLayerIDs render their effects but not their content.
	// Used while an external inline editor overlays the content itself.
	EffectsOnlyLayerIDs map[LayerID]bool

	// DevicePixelRatio is the backing-resolution-to-logical-size ratio of
	// the output surface. Zoom and offset are scaled by it.
	DevicePixelRatio float64
}

// DefaultRenderOptions returns options for a plain full render:
// transparent background, effects on, ratio 1.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Background:       BackgroundTransparent,
		RenderEffects:    true,
		DevicePixelRatio: 1,
	}
}

// WithBackground returns a copy with the background replaced.
func (o RenderOptions) WithBackground(b Background) RenderOptions {
	o.Background = b
	return o
}

// WithHidden returns a copy hiding the given layer ids (in addition to
// any already hidden).
func (o RenderOptions) WithHidden(ids ...LayerID) RenderOptions {
	hidden := make(map[LayerID]bool, len(o.HiddenLayerIDs)+len(ids))
	for id := range o.HiddenLayerIDs {
		hidden[id] = true
	}
	for _, id := range ids {
		hidden[id] = true
	}
	o.HiddenLayerIDs = hidden
	return o
}

// WithEffectsOnly returns a copy marking the given layer ids
// effects-only.
func (o RenderOptions) WithEffectsOnly(ids ...LayerID) RenderOptions {
	eo := make(map[LayerID]bool, len(o.EffectsOnlyLayerIDs)+len(ids))
	for id := range o.EffectsOnlyLayerIDs {
		eo[id] = true
	}
	for _, id := range ids {
		eo[id] = true
	}
	o.EffectsOnlyLayerIDs = eo
	return o
}

// Hidden reports whether a layer id is hidden by these options.
func (o *RenderOptions) Hidden(id LayerID) bool {
	return o.HiddenLayerIDs != nil && o.HiddenLayerIDs[id]
}

// EffectsOnly reports whether a layer id renders effects but no content.
func (o *RenderOptions) EffectsOnly(id LayerID) bool {
	return o.EffectsOnlyLayerIDs != nil && o.EffectsOnlyLayerIDs[id]
}

// SurfaceSize returns the pixel size of the area to render: pasteboard
// when set, canvas otherwise.
func (o *RenderOptions) SurfaceSize(doc *Document) (w, h int) {
	w, h = doc.Width, doc.Height
	if o.PasteboardWidth > 0 {
		w = o.PasteboardWidth
	}
	if o.PasteboardHeight > 0 {
		h = o.PasteboardHeight
	}
	return w, h
}
