package compose

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular pixel buffer.
//
// Pixels are stored in RGBA order, 4 bytes per pixel, row by row, and are
// NOT premultiplied at rest. Compositing code premultiplies on entry and
// divides alpha back out before writing results.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Zero or negative dimensions yield an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapFromData wraps an existing RGBA byte buffer.
// The buffer must hold width*height*4 bytes; a short buffer is rejected by
// returning nil.
func NewPixmapFromData(width, height int, data []uint8) *Pixmap {
	if width <= 0 || height <= 0 || len(data) < width*height*4 {
		return nil
	}
	return &Pixmap{width: width, height: height, data: data[:width*height*4]}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format, non-premultiplied).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Empty reports whether the pixmap has zero area or no backing data.
func (p *Pixmap) Empty() bool {
	return p == nil || p.width <= 0 || p.height <= 0 || len(p.data) == 0
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// AlphaAt returns the alpha byte of a single pixel, 0 outside bounds.
func (p *Pixmap) AlphaAt(x, y int) uint8 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.data[(y*p.width+x)*4+3]
}

// Clear zeroes the pixmap to fully transparent.
func (p *Pixmap) Clear() {
	clear(p.data)
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// CopyFrom copies src into p. Dimensions must match exactly; otherwise
// ErrDimensionMismatch is returned.
func (p *Pixmap) CopyFrom(src *Pixmap) error {
	if src == nil || src.width != p.width || src.height != p.height {
		return ErrDimensionMismatch
	}
	copy(p.data, src.data)
	return nil
}

// MaskAlpha multiplies p's alpha channel by the alpha channel of mask.
// This is the explicit mask-composition entry point: dimensions must match
// exactly, otherwise ErrDimensionMismatch is returned and p is unchanged.
// (The compositor's own layer-mask path clips coordinates defensively
// instead of erroring; see the render package.)
func (p *Pixmap) MaskAlpha(mask *Pixmap) error {
	if mask == nil || mask.width != p.width || mask.height != p.height {
		return ErrDimensionMismatch
	}
	for i := 3; i < len(p.data); i += 4 {
		p.data[i] = uint8(uint16(p.data[i]) * uint16(mask.data[i]) / 255)
	}
	return nil
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
