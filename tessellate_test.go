package paint

import (
	"reflect"
	"testing"

	"github.com/gogpu/paint/atlas"
)

func testViewport() Rect {
	return RectFromMinMax(Pt(0, 0), Pt(200, 200))
}

func circleAt(x, y float32, fill Color32) ClippedShape {
	return ClippedShape{
		ClipRect: Everything(),
		Shape:    CircleShape{Center: Pt(x, y), Radius: 5, Fill: fill},
	}
}

func TestTessellateShapes_Culling(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())
	opts := DefaultTessellationOptions()

	tests := []struct {
		name   string
		shapes []ClippedShape
		want   int
	}{
		{
			name:   "visible shape survives",
			shapes: []ClippedShape{circleAt(50, 50, Red)},
			want:   1,
		},
		{
			name: "shape outside viewport dropped",
			shapes: []ClippedShape{
				circleAt(500, 500, Red),
			},
			want: 0,
		},
		{
			name: "clip outside viewport dropped",
			shapes: []ClippedShape{{
				ClipRect: RectFromMinMax(Pt(300, 300), Pt(400, 400)),
				Shape:    CircleShape{Center: Pt(50, 50), Radius: 5, Fill: Red},
			}},
			want: 0,
		},
		{
			name: "clip missing shape bounds dropped",
			shapes: []ClippedShape{{
				ClipRect: RectFromMinMax(Pt(100, 100), Pt(150, 150)),
				Shape:    CircleShape{Center: Pt(10, 10), Radius: 5, Fill: Red},
			}},
			want: 0,
		},
		{
			name: "zero area clip dropped",
			shapes: []ClippedShape{{
				ClipRect: Nothing(),
				Shape:    CircleShape{Center: Pt(50, 50), Radius: 5, Fill: Red},
			}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TessellateShapes(a, tt.shapes, testViewport(), opts)
			if len(got) != tt.want {
				t.Errorf("got %d primitives, want %d", len(got), tt.want)
			}
		})
	}
}

func TestTessellateShapes_CoalescesSameClipAndTexture(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())

	shapes := []ClippedShape{
		circleAt(20, 20, Red),
		circleAt(50, 50, Green),
		circleAt(80, 80, Blue),
	}

	prims := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1 coalesced job", len(prims))
	}
	p := prims[0]
	if p.IsCallback() {
		t.Fatal("expected a mesh job")
	}
	if p.Mesh.Texture != atlas.AtlasTexture {
		t.Errorf("texture = %d, want atlas", p.Mesh.Texture)
	}
	if err := p.Mesh.Validate(); err != nil {
		t.Errorf("coalesced mesh invalid: %v", err)
	}
}

func TestTessellateShapes_ClipChangeBreaksBatch(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())
	clipA := RectFromMinMax(Pt(0, 0), Pt(100, 100))
	clipB := RectFromMinMax(Pt(0, 0), Pt(60, 60))

	shapes := []ClippedShape{
		{ClipRect: clipA, Shape: CircleShape{Center: Pt(20, 20), Radius: 5, Fill: Red}},
		{ClipRect: clipB, Shape: CircleShape{Center: Pt(30, 30), Radius: 5, Fill: Green}},
		{ClipRect: clipA, Shape: CircleShape{Center: Pt(40, 40), Radius: 5, Fill: Blue}},
	}

	prims := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())
	if len(prims) != 3 {
		t.Fatalf("got %d primitives, want 3 (clip changes split batches)", len(prims))
	}
	if prims[0].ClipRect != clipA || prims[1].ClipRect != clipB || prims[2].ClipRect != clipA {
		t.Error("primitives carry wrong clip rects")
	}
}

func TestTessellateShapes_TextureChangeBreaksBatch(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())

	shapes := []ClippedShape{
		circleAt(20, 20, Red),
		{
			ClipRect: Everything(),
			Shape: ImageShape{
				Texture: 7,
				Rect:    RectFromMinMax(Pt(40, 40), Pt(60, 60)),
			},
		},
		circleAt(80, 80, Blue),
	}

	prims := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())
	if len(prims) != 3 {
		t.Fatalf("got %d primitives, want 3", len(prims))
	}
	wantTex := []atlas.TextureID{atlas.AtlasTexture, 7, atlas.AtlasTexture}
	for i, p := range prims {
		if p.Mesh.Texture != wantTex[i] {
			t.Errorf("primitive %d texture = %d, want %d", i, p.Mesh.Texture, wantTex[i])
		}
	}
}

func TestTessellateShapes_PaintOrderPreserved(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())

	// A red rect then an overlapping blue rect: within the coalesced mesh
	// the blue triangles must come after the red ones so blue wins.
	shapes := []ClippedShape{
		{ClipRect: Everything(), Shape: RectShape{Rect: RectFromMinMax(Pt(0, 0), Pt(50, 50)), Fill: Red}},
		{ClipRect: Everything(), Shape: RectShape{Rect: RectFromMinMax(Pt(25, 25), Pt(75, 75)), Fill: Blue}},
	}

	prims := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
	m := prims[0].Mesh

	lastRed, firstBlue := -1, -1
	for i, v := range m.Vertices {
		switch v.Color {
		case Red:
			lastRed = i
		case Blue:
			if firstBlue < 0 {
				firstBlue = i
			}
		}
	}
	if lastRed < 0 || firstBlue < 0 {
		t.Fatal("missing red or blue vertices")
	}
	if lastRed > firstBlue {
		t.Error("blue vertices do not follow red: paint order lost")
	}
}

func TestTessellateShapes_CallbackPassthrough(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())
	marker := "render me"

	shapes := []ClippedShape{
		circleAt(20, 20, Red),
		{
			ClipRect: Everything(),
			Shape:    CallbackShape{Rect: RectFromMinMax(Pt(0, 0), Pt(50, 50)), Callback: marker},
		},
		circleAt(80, 80, Blue),
	}

	prims := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())
	if len(prims) != 3 {
		t.Fatalf("got %d primitives, want 3", len(prims))
	}
	if prims[0].IsCallback() || prims[2].IsCallback() {
		t.Error("mesh jobs flagged as callbacks")
	}
	cb := prims[1]
	if !cb.IsCallback() {
		t.Fatal("middle primitive is not a callback")
	}
	if cb.Mesh != nil {
		t.Error("callback primitive carries a mesh")
	}
	if got, ok := cb.Callback.Callback.(string); !ok || got != marker {
		t.Errorf("callback payload = %v, want %q", cb.Callback.Callback, marker)
	}
}

func TestTessellateShapes_SplitsOversizedMesh(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())

	// A submitted mesh far past the index ceiling must come out as several
	// jobs, each a valid 16-bit indexable mesh.
	big := &Mesh{Texture: atlas.AtlasTexture}
	for i := 0; i < 20000; i++ {
		x := float32(i % 200)
		y := float32(i / 200)
		big.AddRectWithUV(RectFromMinMax(Pt(x, y), Pt(x+0.9, y+0.9)), Rect{Max: Pt(1, 1)}, White)
	}
	totalTris := len(big.Indices) / 3

	prims := TessellateShapes(a, []ClippedShape{
		{ClipRect: Everything(), Shape: MeshShape{Mesh: big}},
	}, testViewport(), DefaultTessellationOptions())

	if len(prims) < 2 {
		t.Fatalf("got %d primitives, want a split", len(prims))
	}
	gotTris := 0
	for i, p := range prims {
		if err := p.Mesh.Validate(); err != nil {
			t.Fatalf("primitive %d invalid: %v", i, err)
		}
		gotTris += len(p.Mesh.Indices) / 3
	}
	if gotTris != totalTris {
		t.Errorf("split lost triangles: %d != %d", gotTris, totalTris)
	}
}

func TestTessellateShapes_ParallelMatchesSerial(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())

	var shapes []ClippedShape
	for i := 0; i < 40; i++ {
		x := float32(10 + (i%10)*18)
		y := float32(10 + (i/10)*18)
		switch i % 3 {
		case 0:
			shapes = append(shapes, circleAt(x, y, Red))
		case 1:
			shapes = append(shapes, ClippedShape{
				ClipRect: Everything(),
				Shape:    RectShape{Rect: RectFromCenterSize(Pt(x, y), V2(10, 10)), Rounding: EvenRounding(2), Fill: Green},
			})
		case 2:
			shapes = append(shapes, ClippedShape{
				ClipRect: Everything(),
				Shape: PathShape{
					Points: []Point{Pt(x-5, y), Pt(x, y-5), Pt(x+5, y)},
					Stroke: NewStroke(2, Blue),
				},
			})
		}
	}

	serial := TessellateShapes(a, shapes, testViewport(), DefaultTessellationOptions())

	opts := DefaultTessellationOptions()
	opts.Workers = 4
	parallel := TessellateShapes(a, shapes, testViewport(), opts)

	if !reflect.DeepEqual(serial, parallel) {
		t.Error("parallel tessellation output differs from serial")
	}
}

func TestTessellateShapes_Empty(t *testing.T) {
	a := atlas.New(atlas.DefaultConfig())
	if got := TessellateShapes(a, nil, testViewport(), DefaultTessellationOptions()); len(got) != 0 {
		t.Errorf("got %d primitives from no shapes", len(got))
	}
}
