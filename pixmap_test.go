package compose

import (
	"errors"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	p := NewPixmap(4, 4)
	c := RGBA{R: 1, G: 0.5, B: 0, A: 1}
	p.SetPixel(2, 1, c)

	got := p.GetPixel(2, 1)
	if got.R != 1 || got.A != 1 {
		t.Errorf("GetPixel = %+v", got)
	}
	// 0.5 quantizes to 127/255.
	if got.G != 127.0/255 {
		t.Errorf("G = %v, want %v", got.G, 127.0/255)
	}

	// Out-of-bounds reads are transparent, writes are dropped.
	if p.GetPixel(-1, 0) != Transparent || p.GetPixel(4, 0) != Transparent {
		t.Error("out-of-bounds read not transparent")
	}
	p.SetPixel(-1, -1, c)
	p.SetPixel(4, 4, c)
}

func TestNewPixmapNegativeDims(t *testing.T) {
	p := NewPixmap(-5, 10)
	if !p.Empty() || p.Width() != 0 {
		t.Errorf("negative width: %dx%d empty=%v", p.Width(), p.Height(), p.Empty())
	}
}

func TestNewPixmapFromData(t *testing.T) {
	data := make([]uint8, 4*4*4)
	if p := NewPixmapFromData(4, 4, data); p == nil || p.Width() != 4 {
		t.Error("valid buffer rejected")
	}
	if p := NewPixmapFromData(4, 4, data[:10]); p != nil {
		t.Error("short buffer accepted")
	}
	if p := NewPixmapFromData(0, 4, nil); p != nil {
		t.Error("zero width accepted")
	}
}

func TestPixmapCopyFrom(t *testing.T) {
	src := NewPixmap(3, 3)
	src.Fill(Red)

	dst := NewPixmap(3, 3)
	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if dst.GetPixel(1, 1) != Red {
		t.Errorf("pixel = %+v", dst.GetPixel(1, 1))
	}

	other := NewPixmap(3, 4)
	if err := other.CopyFrom(src); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("mismatched CopyFrom: %v, want ErrDimensionMismatch", err)
	}
	if err := dst.CopyFrom(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("nil CopyFrom: %v, want ErrDimensionMismatch", err)
	}
}

func TestPixmapMaskAlpha(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Fill(White)

	mask := NewPixmap(2, 2)
	mask.SetPixel(0, 0, RGBA{A: 1})
	mask.SetPixel(1, 1, RGBA{A: 0.5})

	if err := p.MaskAlpha(mask); err != nil {
		t.Fatalf("MaskAlpha: %v", err)
	}
	if a := p.AlphaAt(0, 0); a != 255 {
		t.Errorf("full mask alpha = %d", a)
	}
	if a := p.AlphaAt(1, 1); a != 127 {
		t.Errorf("half mask alpha = %d", a)
	}
	if a := p.AlphaAt(0, 1); a != 0 {
		t.Errorf("unmasked alpha = %d", a)
	}

	wrong := NewPixmap(3, 2)
	if err := p.MaskAlpha(wrong); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("mismatched MaskAlpha: %v, want ErrDimensionMismatch", err)
	}
}

func TestPixmapFillClearClone(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Fill(Blue)

	c := p.Clone()
	p.Clear()

	if p.GetPixel(0, 0) != Transparent {
		t.Error("Clear left pixels behind")
	}
	if c.GetPixel(1, 1) != Blue {
		t.Error("Clone shares storage with original")
	}
}

func TestPixmapImageRoundTrip(t *testing.T) {
	p := NewPixmap(3, 2)
	p.SetPixel(0, 0, Red)
	p.SetPixel(2, 1, Green)

	back := FromImage(p) // Pixmap implements image.Image
	if back.Width() != 3 || back.Height() != 2 {
		t.Fatalf("dims %dx%d", back.Width(), back.Height())
	}
	if back.GetPixel(0, 0) != Red {
		t.Errorf("pixel (0,0) = %+v", back.GetPixel(0, 0))
	}
	if back.GetPixel(2, 1) != Green {
		t.Errorf("pixel (2,1) = %+v", back.GetPixel(2, 1))
	}
}
