package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glyphMask is one rasterized glyph: tightly cropped alpha coverage plus the
// placement of the bitmap relative to the pen position on the baseline.
type glyphMask struct {
	// pix holds w*h coverage bytes, row-major.
	pix  []uint8
	w, h int

	// left and top offset the bitmap's top-left corner from the pen,
	// y-down: top is negative for anything above the baseline.
	left, top int
}

// rasterizeGlyph renders a glyph outline at the given pixel size.
// Returns (nil, nil) for glyphs with no outline (spaces).
// Coverage comes from x/image/vector's analytic scanline rasterizer, so no
// multisampling is involved; edge smoothness inside the bitmap is exact.
func rasterizeGlyph(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem fixed.Int26_6) (*glyphMask, error) {
	segs, err := f.LoadGlyph(buf, gid, ppem, nil)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, nil
	}

	minX, minY, maxX, maxY := segmentBounds(segs)
	// One texel of slack on each side keeps the analytic edge ramp inside
	// the bitmap.
	x0 := minX.Floor() - 1
	y0 := minY.Floor() - 1
	w := maxX.Ceil() + 1 - x0
	h := maxY.Ceil() + 1 - y0
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	started := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				r.ClosePath()
			}
			p := segPoint(seg.Args[0], x0, y0)
			r.MoveTo(p[0], p[1])
			started = true
		case sfnt.SegmentOpLineTo:
			p := segPoint(seg.Args[0], x0, y0)
			r.LineTo(p[0], p[1])
		case sfnt.SegmentOpQuadTo:
			c := segPoint(seg.Args[0], x0, y0)
			p := segPoint(seg.Args[1], x0, y0)
			r.QuadTo(c[0], c[1], p[0], p[1])
		case sfnt.SegmentOpCubeTo:
			c1 := segPoint(seg.Args[0], x0, y0)
			c2 := segPoint(seg.Args[1], x0, y0)
			p := segPoint(seg.Args[2], x0, y0)
			r.CubeTo(c1[0], c1[1], c2[0], c2[1], p[0], p[1])
		}
	}
	if started {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return &glyphMask{
		pix:  dst.Pix,
		w:    w,
		h:    h,
		left: x0,
		top:  y0,
	}, nil
}

// segmentBounds returns the fixed-point bounding box over all segment
// control points. Control points of curves may lie outside the curve, so the
// box is conservative, which only costs a few blank texels.
func segmentBounds(segs sfnt.Segments) (minX, minY, maxX, maxY fixed.Int26_6) {
	const big = fixed.Int26_6(1 << 30)
	minX, minY = big, big
	maxX, maxY = -big, -big
	update := func(p fixed.Point26_6) {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo:
			update(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			update(seg.Args[0])
			update(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			update(seg.Args[0])
			update(seg.Args[1])
			update(seg.Args[2])
		}
	}
	return minX, minY, maxX, maxY
}

// segPoint converts a fixed-point outline coordinate into rasterizer space,
// shifted so the bitmap starts at (0, 0).
func segPoint(p fixed.Point26_6, x0, y0 int) [2]float32 {
	return [2]float32{
		float32(p.X)/64 - float32(x0),
		float32(p.Y)/64 - float32(y0),
	}
}

// tofuMask synthesizes the fallback box drawn for glyphs the font cannot
// render: a hollow rectangle roughly matching the size of a digit.
func tofuMask(ppem fixed.Int26_6) *glyphMask {
	size := float32(ppem) / 64
	w := int(size*0.5 + 0.5)
	h := int(size*0.7 + 0.5)
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	border := h / 8
	if border < 1 {
		border = 1
	}

	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			onBorder := x < border || x >= w-border || y < border || y >= h-border
			if onBorder {
				pix[y*w+x] = 0xff
			}
		}
	}
	return &glyphMask{
		pix:  pix,
		w:    w,
		h:    h,
		left: int(size * 0.05),
		top:  -h,
	}
}
