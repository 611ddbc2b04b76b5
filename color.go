package paint

import "image/color"

// Color32 is a premultiplied RGBA color with 8 bits per channel.
// Premultiplication means R, G and B are already scaled by A, which is what
// the blend equation on the GPU side expects and what per-vertex feathering
// interpolates correctly: fading to Transparent fades the whole contribution.
type Color32 struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color32{}
	Black       = Color32{A: 255}
	White       = Color32{R: 255, G: 255, B: 255, A: 255}
	Red         = Color32{R: 255, A: 255}
	Green       = Color32{G: 255, A: 255}
	Blue        = Color32{B: 255, A: 255}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color32 {
	return Color32{R: r, G: g, B: b, A: 255}
}

// PremultipliedRGBA creates a color from components that are already
// premultiplied by alpha. No component may exceed a.
func PremultipliedRGBA(r, g, b, a uint8) Color32 {
	return Color32{R: r, G: g, B: b, A: a}
}

// UnmultipliedRGBA creates a color from straight (non-premultiplied)
// components, multiplying the color channels by alpha.
func UnmultipliedRGBA(r, g, b, a uint8) Color32 {
	if a == 255 {
		return Color32{R: r, G: g, B: b, A: a}
	}
	if a == 0 {
		return Transparent
	}
	return Color32{
		R: mulU8(r, a),
		G: mulU8(g, a),
		B: mulU8(b, a),
		A: a,
	}
}

// FromColor converts a standard color.Color to Color32.
// color.Color's RGBA method already returns premultiplied components.
func FromColor(c color.Color) Color32 {
	r, g, b, a := c.RGBA()
	return Color32{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional '#'.
// Alpha, when present, is treated as straight alpha and premultiplied.
func Hex(hex string) Color32 {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Black
	}

	return UnmultipliedRGBA(uint8(r), uint8(g), uint8(b), uint8(a))
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Color converts Color32 to the standard color.Color interface.
func (c Color32) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// IsTransparent returns true if the color is fully transparent.
// Transparent geometry can be skipped entirely.
func (c Color32) IsTransparent() bool {
	return c.A == 0
}

// IsOpaque returns true if the color has full alpha.
func (c Color32) IsOpaque() bool {
	return c.A == 255
}

// MulAlpha scales the color's opacity by t in [0, 1].
// All four channels are scaled since the color is premultiplied.
// Used for strokes thinner than a feather, which render at a feather's
// width with proportionally reduced coverage.
func (c Color32) MulAlpha(t float32) Color32 {
	if t >= 1 {
		return c
	}
	if t <= 0 {
		return Transparent
	}
	return Color32{
		R: uint8(float32(c.R)*t + 0.5),
		G: uint8(float32(c.G)*t + 0.5),
		B: uint8(float32(c.B)*t + 0.5),
		A: uint8(float32(c.A)*t + 0.5),
	}
}

// mulU8 multiplies two bytes treating them as fractions of 255,
// rounding to nearest.
func mulU8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}
