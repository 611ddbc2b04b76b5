package paint

import "testing"

func TestGraphicLayers_PaintOrder(t *testing.T) {
	layers := NewGraphicLayers()
	clip := RectFromMinMax(Pt(0, 0), Pt(100, 100))

	bg := layers.List(LayerID{Order: OrderBackground})
	fg := layers.List(LayerID{Order: OrderForeground})
	mid := layers.List(LayerID{Order: OrderMiddle})

	// Submit out of z-order on purpose.
	fg.Add(clip, CircleShape{Center: Pt(3, 3), Radius: 1, Fill: Blue})
	bg.Add(clip, CircleShape{Center: Pt(1, 1), Radius: 1, Fill: Red})
	mid.Add(clip, CircleShape{Center: Pt(2, 2), Radius: 1, Fill: Green})

	shapes := layers.Drain()
	if len(shapes) != 3 {
		t.Fatalf("Drain() = %d shapes, want 3", len(shapes))
	}
	want := []Color32{Red, Green, Blue}
	for i, s := range shapes {
		c := s.Shape.(CircleShape)
		if c.Fill != want[i] {
			t.Errorf("shape %d fill = %v, want %v", i, c.Fill, want[i])
		}
	}
}

func TestGraphicLayers_SubmissionOrderWithinLayer(t *testing.T) {
	layers := NewGraphicLayers()
	clip := RectFromMinMax(Pt(0, 0), Pt(100, 100))
	list := layers.List(LayerID{Order: OrderMiddle})

	// A red rect painted first, then an overlapping blue one: blue must
	// come later so it paints on top.
	list.Add(clip, RectShape{Rect: RectFromMinMax(Pt(0, 0), Pt(50, 50)), Fill: Red})
	list.Add(clip, RectShape{Rect: RectFromMinMax(Pt(25, 25), Pt(75, 75)), Fill: Blue})

	shapes := layers.Drain()
	if len(shapes) != 2 {
		t.Fatalf("Drain() = %d shapes, want 2", len(shapes))
	}
	if shapes[0].Shape.(RectShape).Fill != Red || shapes[1].Shape.(RectShape).Fill != Blue {
		t.Error("overlapping shapes lost submission order")
	}
}

func TestGraphicLayers_InsertionOrderWithinOrderClass(t *testing.T) {
	layers := NewGraphicLayers()
	clip := Everything()

	// Two distinct layers in the same order class: first created paints
	// first, regardless of ID values.
	first := layers.List(LayerID{Order: OrderMiddle, ID: 99})
	second := layers.List(LayerID{Order: OrderMiddle, ID: 1})

	second.Add(clip, CircleShape{Radius: 1, Fill: Blue})
	first.Add(clip, CircleShape{Radius: 1, Fill: Red})

	shapes := layers.Drain()
	if len(shapes) != 2 {
		t.Fatalf("Drain() = %d shapes, want 2", len(shapes))
	}
	if shapes[0].Shape.(CircleShape).Fill != Red {
		t.Error("layer created first did not paint first")
	}
}

func TestGraphicLayers_DrainResets(t *testing.T) {
	layers := NewGraphicLayers()
	layers.List(LayerID{Order: OrderMiddle}).Add(Everything(), CircleShape{Radius: 1, Fill: Red})

	if got := len(layers.Drain()); got != 1 {
		t.Fatalf("first Drain() = %d shapes, want 1", got)
	}
	if got := len(layers.Drain()); got != 0 {
		t.Errorf("second Drain() = %d shapes, want 0", got)
	}
}

func TestOrder_String(t *testing.T) {
	tests := []struct {
		order  Order
		expect string
	}{
		{OrderBackground, "Background"},
		{OrderPanelResizeLine, "PanelResizeLine"},
		{OrderMiddle, "Middle"},
		{OrderForeground, "Foreground"},
		{OrderTooltip, "Tooltip"},
		{OrderDebug, "Debug"},
		{Order(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.order.String(); got != tt.expect {
			t.Errorf("Order(%d).String() = %q, want %q", tt.order, got, tt.expect)
		}
	}
}
