// Package paint turns high-level 2D shapes into GPU-ready triangle meshes.
//
// # Overview
//
// paint is the geometry engine of an immediate-mode UI stack: every frame the
// widget layer submits shapes (circles, rectangles, paths, text, images) into
// layered paint lists, and the tessellation pass converts them into a small
// number of indexed, textured draw jobs for whatever renderer sits below.
//
// # Pipeline
//
//	layers := paint.NewGraphicLayers()
//	list := layers.List(paint.LayerID{Order: paint.OrderMiddle})
//	list.Add(clip, paint.CircleShape{Center: c, Radius: 10, Fill: paint.Red})
//
//	prims := paint.TessellateShapes(atl, layers.Drain(), viewport, opts)
//	for _, p := range prims {
//	    // p.ClipRect + p.Mesh (or p.Callback) go straight to the renderer.
//	}
//
// # Anti-aliasing
//
// Tessellation feathers every edge: a one-pixel alpha ramp is extruded around
// fills and strokes so geometry looks smooth without multisampling. Vertex
// colors are premultiplied; the ramp fades to transparent.
//
// # Subpackages
//
//   - atlas: shelf-packed alpha texture atlas for glyphs and the white texel
//   - text: font shaping, layout and glyph rasterization into the atlas
//   - cache: the sharded LRU used by the text layer
//
// # Coordinates
//
// Positions are in logical points, x right, y down. Texture coordinates are
// normalized. All colors are premultiplied RGBA bytes.
package paint
