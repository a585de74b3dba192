package compose

// BlendMode identifies one of the 16 named layer blend modes.
//
// The first twelve are separable (per-channel); the last four are the
// non-separable HSL modes that operate on the whole RGB triplet.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity

	numBlendModes
)

var blendModeNames = [numBlendModes]string{
	BlendNormal:     "normal",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
	BlendHue:        "hue",
	BlendSaturation: "saturation",
	BlendColor:      "color",
	BlendLuminosity: "luminosity",
}

// String returns the canonical wire name of the mode.
func (m BlendMode) String() string {
	if m < numBlendModes {
		return blendModeNames[m]
	}
	return "normal"
}

// Valid reports whether m is one of the 16 named modes.
func (m BlendMode) Valid() bool {
	return m < numBlendModes
}

// ParseBlendMode maps a wire name to its BlendMode.
// Unknown names map to BlendNormal (defensive default), never an error.
func ParseBlendMode(name string) BlendMode {
	for m, n := range blendModeNames {
		if n == name {
			return BlendMode(m) //nolint:gosec // m < numBlendModes
		}
	}
	return BlendNormal
}
