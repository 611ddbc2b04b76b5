package paint

import "testing"

func TestHex(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		expect Color32
	}{
		{"short rgb", "f00", Red},
		{"short rgb with hash", "#0f0", Green},
		{"long rgb", "0000ff", Blue},
		{"long rgb with hash", "#ffffff", White},
		{"long rgba opaque", "ff0000ff", Red},
		{"short rgba", "000f", Black},
		{"mixed case", "#FfFfFf", White},
		{"invalid length", "12345", Black},
		{"empty", "", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.expect {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.expect)
			}
		})
	}
}

func TestHex_PremultipliesAlpha(t *testing.T) {
	// 50% alpha white: channels must come out premultiplied.
	c := Hex("ffffff80")
	if c.A != 0x80 {
		t.Fatalf("A = %d, want 128", c.A)
	}
	if c.R > c.A || c.G > c.A || c.B > c.A {
		t.Errorf("Hex(ffffff80) = %v is not premultiplied", c)
	}
}

func TestUnmultipliedRGBA(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
		expect     Color32
	}{
		{"opaque passthrough", 10, 20, 30, 255, Color32{10, 20, 30, 255}},
		{"zero alpha collapses", 200, 200, 200, 0, Transparent},
		{"half alpha scales", 255, 255, 255, 128, Color32{128, 128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnmultipliedRGBA(tt.r, tt.g, tt.b, tt.a)
			if got != tt.expect {
				t.Errorf("UnmultipliedRGBA(%d,%d,%d,%d) = %v, want %v",
					tt.r, tt.g, tt.b, tt.a, got, tt.expect)
			}
		})
	}
}

func TestColor32_MulAlpha(t *testing.T) {
	tests := []struct {
		name   string
		c      Color32
		t      float32
		expect Color32
	}{
		{"identity", Red, 1, Red},
		{"above one clamps", Red, 2, Red},
		{"zero", White, 0, Transparent},
		{"negative clamps", White, -1, Transparent},
		{"half of white", White, 0.5, Color32{128, 128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.MulAlpha(tt.t); got != tt.expect {
				t.Errorf("%v.MulAlpha(%v) = %v, want %v", tt.c, tt.t, got, tt.expect)
			}
		})
	}
}

func TestColor32_MulAlpha_StaysPremultiplied(t *testing.T) {
	c := Color32{R: 200, G: 100, B: 50, A: 255}
	for _, f := range []float32{0.1, 0.25, 0.5, 0.9} {
		got := c.MulAlpha(f)
		if got.R > got.A || got.G > got.A || got.B > got.A {
			t.Errorf("MulAlpha(%v) = %v violates premultiplication", f, got)
		}
	}
}

func TestColor32_Predicates(t *testing.T) {
	if !Transparent.IsTransparent() {
		t.Error("Transparent.IsTransparent() = false")
	}
	if Transparent.IsOpaque() {
		t.Error("Transparent.IsOpaque() = true")
	}
	if !White.IsOpaque() {
		t.Error("White.IsOpaque() = false")
	}
	if (Color32{A: 1}).IsTransparent() {
		t.Error("A=1 should not be transparent")
	}
}

func TestFromColor_RoundTrip(t *testing.T) {
	for _, c := range []Color32{Black, White, Red, Green, Blue, {10, 20, 30, 255}} {
		if got := FromColor(c.Color()); got != c {
			t.Errorf("FromColor(%v.Color()) = %v", c, got)
		}
	}
}
