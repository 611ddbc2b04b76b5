package paint

import "slices"

// Order is the coarse z-class of a layer. Within one Order, layers paint in
// insertion order; all layers of a higher Order paint on top of every layer
// of a lower one.
type Order uint8

const (
	// OrderBackground paints behind everything else.
	OrderBackground Order = iota

	// OrderPanelResizeLine paints panel resize handles above the
	// background but below widget content.
	OrderPanelResizeLine

	// OrderMiddle is where ordinary widget output goes.
	OrderMiddle

	// OrderForeground paints above the middle layers (popups, menus).
	OrderForeground

	// OrderTooltip is the "always on top" class for tooltips and overlays.
	OrderTooltip

	// OrderDebug paints above all application content.
	OrderDebug
)

// String returns a human-readable name for the order.
func (o Order) String() string {
	switch o {
	case OrderBackground:
		return "Background"
	case OrderPanelResizeLine:
		return "PanelResizeLine"
	case OrderMiddle:
		return "Middle"
	case OrderForeground:
		return "Foreground"
	case OrderTooltip:
		return "Tooltip"
	case OrderDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// LayerID identifies one paint layer within a frame.
type LayerID struct {
	// Order is the z-class.
	Order Order

	// ID distinguishes layers sharing an Order. Typically a widget or
	// window identity; its value does not affect paint order, which is
	// insertion order within the Order class.
	ID uint64
}

// ClippedShape is one shape tagged with the clip rectangle that was active
// when it was submitted.
type ClippedShape struct {
	// ClipRect limits where the shape is visible, in logical points.
	ClipRect Rect

	// Shape is the paint primitive.
	Shape Shape
}

// PaintList accumulates the shapes of one layer in submission order.
type PaintList struct {
	shapes []ClippedShape
}

// Add appends a shape with the active clip rect.
func (l *PaintList) Add(clip Rect, shape Shape) {
	l.shapes = append(l.shapes, ClippedShape{ClipRect: clip, Shape: shape})
}

// Extend appends several shapes sharing one clip rect.
func (l *PaintList) Extend(clip Rect, shapes ...Shape) {
	for _, s := range shapes {
		l.Add(clip, s)
	}
}

// Len returns the number of shapes in the list.
func (l *PaintList) Len() int { return len(l.shapes) }

// GraphicLayers collects the paint lists of one frame.
// Shapes are appended to the layer active at submission time; Drain merges
// all layers into the final paint order. The zero value is not usable; see
// NewGraphicLayers.
type GraphicLayers struct {
	order []LayerID // insertion order of layers
	lists map[LayerID]*PaintList
}

// NewGraphicLayers creates an empty frame of layers.
func NewGraphicLayers() *GraphicLayers {
	return &GraphicLayers{
		lists: make(map[LayerID]*PaintList),
	}
}

// List returns the paint list for a layer, creating it on first use.
func (g *GraphicLayers) List(id LayerID) *PaintList {
	if l, ok := g.lists[id]; ok {
		return l
	}
	l := &PaintList{}
	g.lists[id] = l
	g.order = append(g.order, id)
	return l
}

// Drain returns every shape of the frame in final paint order and resets
// the layers for the next frame.
//
// The order is total: layers sort by Order, stably, so layers sharing an
// Order keep their insertion order, and within a layer shapes keep their
// submission order. Later entries paint on top of earlier ones.
func (g *GraphicLayers) Drain() []ClippedShape {
	ids := slices.Clone(g.order)
	slices.SortStableFunc(ids, func(a, b LayerID) int {
		return int(a.Order) - int(b.Order)
	})

	total := 0
	for _, id := range ids {
		total += g.lists[id].Len()
	}
	out := make([]ClippedShape, 0, total)
	for _, id := range ids {
		out = append(out, g.lists[id].shapes...)
	}

	g.order = g.order[:0]
	clear(g.lists)
	return out
}
