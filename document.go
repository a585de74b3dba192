package compose

// ColorMode identifies the document color mode.
type ColorMode uint8

const (
	// ColorModeRGB is 8-bit-per-channel RGB with alpha.
	ColorModeRGB ColorMode = iota

	// ColorModeGrayscale is single-channel grayscale with alpha.
	ColorModeGrayscale
)

// Document is an immutable-for-the-frame layer tree plus canvas metadata.
//
// Documents are created and mutated entirely outside this package (by the
// editing/command core); the compositor only reads them. Callers must not
// mutate the tree or any layer pixel buffer while a render call is in
// flight.
type Document struct {
	// Root holds the top-level layers, bottom-to-top.
	Root *GroupLayer

	// Width and Height are the canvas size in document pixels.
	Width  int
	Height int

	// DPI is the nominal resolution, informational only.
	DPI float64

	// Mode is the document color mode.
	Mode ColorMode
}

// NewDocument creates an empty document with the given canvas size.
func NewDocument(width, height int) *Document {
	return &Document{
		Root:   &GroupLayer{LayerBase: LayerBase{Name: "root", Visible: true, Opacity: 1}},
		Width:  width,
		Height: height,
		DPI:    72,
	}
}

// LayerID uniquely identifies a layer within a document.
type LayerID uint64

// AlphaMask is an optional per-layer alpha mask.
//
// Data holds one alpha byte per pixel, row by row. The mask is positioned
// at (OffsetX, OffsetY) in document space. Where the mask has no coverage
// the layer is fully hidden; mask coordinates outside the layer are
// clipped defensively by the compositor.
type AlphaMask struct {
	Data    []uint8
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	Enabled bool
}

// AlphaAt returns the mask alpha at document coordinates (x, y).
// Pixels outside the mask are fully transparent.
func (m *AlphaMask) AlphaAt(x, y int) uint8 {
	mx := x - m.OffsetX
	my := y - m.OffsetY
	if mx < 0 || mx >= m.Width || my < 0 || my >= m.Height {
		return 0
	}
	return m.Data[my*m.Width+mx]
}

// LayerBase holds the fields common to every layer variant.
type LayerBase struct {
	ID      LayerID
	Name    string
	Visible bool

	// Opacity is in [0, 1].
	Opacity float64

	// Mode is how this layer blends onto the content below it.
	Mode BlendMode

	// X, Y position the layer content in document space.
	X, Y float64

	// Locked blocks edits; the compositor ignores it.
	Locked bool

	// Effects is the ordered effect stack.
	Effects []Effect

	// Clipping marks this layer as a clipping mask: its content is
	// confined to the alpha footprint of the nearest non-clipping layer
	// below it.
	Clipping bool

	// Mask is the optional alpha mask.
	Mask *AlphaMask
}

// Base returns the shared layer fields.
func (b *LayerBase) Base() *LayerBase { return b }

// Layer is the closed set of layer variants: RasterLayer, TextLayer and
// GroupLayer. The compositor dispatches on the concrete type.
type Layer interface {
	Base() *LayerBase

	// isLayer seals the interface to this package's variants.
	isLayer()
}

// RasterLayer is a layer backed by a pixel buffer.
type RasterLayer struct {
	LayerBase

	// Pixels is the layer's RGBA8 buffer, not premultiplied.
	// A nil or empty buffer renders nothing (not an error).
	Pixels *Pixmap
}

func (*RasterLayer) isLayer() {}

// TextAlignment controls horizontal placement of each text line.
type TextAlignment uint8

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)

// WritingMode selects the text flow direction.
type WritingMode uint8

const (
	// WritingHorizontal is standard left-to-right horizontal text.
	WritingHorizontal WritingMode = iota

	// WritingVerticalRL lays out lines as columns, right to left.
	WritingVerticalRL
)

// TextBox is an optional explicit wrapping box for a text layer, in
// document pixels.
type TextBox struct {
	Width  float64
	Height float64
}

// TextLayer is a layer holding live text.
type TextLayer struct {
	LayerBase

	// Content is the text, possibly multi-line ("\n" separated).
	Content string

	// FontData is raw font file bytes (TTF/OTF). When nil, layout falls
	// back to heuristic extents and glyphs cannot be rasterized.
	FontData []byte

	// FontSize is in document pixels.
	FontSize float64

	// LineHeight is a multiplier of FontSize; 0 means the default 1.2.
	LineHeight float64

	// Color is the fill color of the glyphs.
	Color RGBA

	Align   TextAlignment
	Writing WritingMode

	// Box constrains wrapping when non-nil.
	Box *TextBox
}

func (*TextLayer) isLayer() {}

// GroupLayer is a layer holding an ordered list of children,
// bottom-to-top. Compositing a group is recursive: children composite
// into an isolated surface which is then drawn onto the parent with the
// group's own opacity and blend mode.
type GroupLayer struct {
	LayerBase

	Children []Layer
}

func (*GroupLayer) isLayer() {}

// FindLayer walks the tree depth-first and returns the layer with the
// given id, or nil.
func (d *Document) FindLayer(id LayerID) Layer {
	if d.Root == nil {
		return nil
	}
	return findLayer(d.Root, id)
}

func findLayer(g *GroupLayer, id LayerID) Layer {
	for _, child := range g.Children {
		if child.Base().ID == id {
			return child
		}
		if sub, ok := child.(*GroupLayer); ok {
			if found := findLayer(sub, id); found != nil {
				return found
			}
		}
	}
	return nil
}
