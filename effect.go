package compose

// Effect is the closed set of layer effect variants. Each variant carries
// its own parameters; the Enabled flag gates rendering. Parameter units
// are part of the wire contract: angles in degrees, sizes/distances/blurs
// in document pixels, opacities in [0, 1].
type Effect interface {
	// Active reports whether the effect should render.
	Active() bool

	// isEffect seals the interface to this package's variants.
	isEffect()
}

// StrokePosition places a stroke relative to the layer edge.
type StrokePosition uint8

const (
	StrokeOutside StrokePosition = iota
	StrokeCenter
	StrokeInside
)

// StrokeEffect outlines the layer's alpha silhouette.
type StrokeEffect struct {
	Enabled  bool
	Color    RGBA
	Opacity  float64
	Size     float64
	Position StrokePosition
}

func (e *StrokeEffect) Active() bool { return e.Enabled }
func (*StrokeEffect) isEffect()      {}

// DropShadowEffect renders a blurred, offset copy of the silhouette
// behind the layer content.
type DropShadowEffect struct {
	Enabled  bool
	Color    RGBA
	Opacity  float64
	Angle    float64 // light direction in degrees
	Distance float64
	Blur     float64
	Spread   float64 // percent [0, 100]; trades blur for hard edge
}

func (e *DropShadowEffect) Active() bool { return e.Enabled }
func (*DropShadowEffect) isEffect()      {}

// OuterGlowEffect renders a blurred halo behind the layer content.
type OuterGlowEffect struct {
	Enabled bool
	Color   RGBA
	Opacity float64
	Size    float64
	Spread  float64 // percent [0, 100]
}

func (e *OuterGlowEffect) Active() bool { return e.Enabled }
func (*OuterGlowEffect) isEffect()      {}

// InnerShadowEffect darkens the inside edge of the silhouette in the
// light direction.
type InnerShadowEffect struct {
	Enabled  bool
	Color    RGBA
	Opacity  float64
	Angle    float64 // degrees
	Distance float64
	Blur     float64
	Choke    float64 // percent [0, 100]
}

func (e *InnerShadowEffect) Active() bool { return e.Enabled }
func (*InnerShadowEffect) isEffect()      {}

// GlowSource selects where an inner glow emanates from.
type GlowSource uint8

const (
	// GlowEdge keeps a ring of glow near the silhouette boundary.
	GlowEdge GlowSource = iota

	// GlowCenter keeps glow density in the silhouette interior.
	GlowCenter
)

// InnerGlowEffect renders a glow inside the silhouette.
type InnerGlowEffect struct {
	Enabled bool
	Color   RGBA
	Opacity float64
	Size    float64
	Choke   float64 // percent [0, 100]
	Source  GlowSource
}

func (e *InnerGlowEffect) Active() bool { return e.Enabled }
func (*InnerGlowEffect) isEffect()      {}

// ColorOverlayEffect replaces the silhouette's color entirely.
type ColorOverlayEffect struct {
	Enabled bool
	Color   RGBA
	Opacity float64
}

func (e *ColorOverlayEffect) Active() bool { return e.Enabled }
func (*ColorOverlayEffect) isEffect()      {}

// GradientStyle selects the gradient geometry.
type GradientStyle uint8

const (
	GradientLinear GradientStyle = iota
	GradientRadial
)

// GradientStop is a color at a position in [0, 1].
type GradientStop struct {
	Position float64
	Color    RGBA
}

// GradientOverlayEffect fills the silhouette with a gradient.
// An empty stop list falls back to black-to-white.
type GradientOverlayEffect struct {
	Enabled bool
	Stops   []GradientStop
	Opacity float64
	Angle   float64 // degrees, linear style only
	Scale   float64 // percent; 0 means 100
	Style   GradientStyle
	Reverse bool
}

func (e *GradientOverlayEffect) Active() bool { return e.Enabled }
func (*GradientOverlayEffect) isEffect()      {}

// BevelStyle selects which edges a bevel affects.
type BevelStyle uint8

const (
	BevelOuter BevelStyle = iota
	BevelInner
	BevelEmboss
	BevelPillowEmboss
)

// BevelDirection flips the apparent light polarity.
type BevelDirection uint8

const (
	BevelUp BevelDirection = iota
	BevelDown
)

// BevelEmbossEffect simulates raised or carved edges with a highlight and
// a shadow pass.
type BevelEmbossEffect struct {
	Enabled   bool
	Style     BevelStyle
	Depth     float64 // percent; boosts pass opacity by depth/100, capped
	Direction BevelDirection
	Size      float64
	Soften    float64
	Angle     float64 // light direction in degrees
	Altitude  float64 // light altitude in degrees; higher flattens offset

	HighlightColor   RGBA
	HighlightOpacity float64
	ShadowColor      RGBA
	ShadowOpacity    float64
}

func (e *BevelEmbossEffect) Active() bool { return e.Enabled }
func (*BevelEmbossEffect) isEffect()      {}
