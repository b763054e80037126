package vtext

// Vertex is one corner of a glyph quad as fed to the coverage stage.
// X, Y are positions in the caller's output space (pixels, pre-projection).
// U, V are the interpolated curve-space coordinates: bearing-relative font
// design units, deliberately not normalized to [0, 1], so the interpolated
// value lands directly in the coordinate system the curve buffer uses.
// Index is the glyph's buffer index; negative values select diagnostic
// overlays.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Index int32
}

// VerticesPerQuad is the number of vertices emitted per glyph quad
// (two triangles).
const VerticesPerQuad = 6

// EmitString emits one quad per visible glyph of s, in order, starting at
// origin. scale is the caller's pixel-per-font-unit factor (e.g.
// pixelSize / unitsPerEm). Characters the compilation does not know resolve
// to the undefined glyph; glyphs with zero width or height (space) emit no
// quad but still advance the pen.
//
// The returned advance is the pen's final x offset from origin, in the same
// units as the positions.
func EmitString(comp *FontCompilation, s string, origin Point, scale float32) ([]Vertex, float32) {
	verts := make([]Vertex, 0, len(s)*VerticesPerQuad)
	pen := origin
	for _, r := range s {
		m := comp.Glyph(r)
		if m.Width != 0 && m.Height != 0 {
			verts = appendQuad(verts, m, pen, scale, m.BufferIndex)
		}
		pen.X += m.Advance * scale
	}
	return verts, pen.X - origin.X
}

// EmitStringOverlays emits the diagnostic overlay quads for s: the glyph
// bounding box for every visible glyph, and the advance box for every glyph.
// Overlay quads carry sentinel indices and never touch the curve buffer.
func EmitStringOverlays(comp *FontCompilation, s string, origin Point, scale float32) []Vertex {
	verts := make([]Vertex, 0, 2*len(s)*VerticesPerQuad)
	em := float32(comp.UnitsPerEm())
	pen := origin
	for _, r := range s {
		m := comp.Glyph(r)
		if m.Width != 0 && m.Height != 0 {
			verts = appendQuad(verts, m, pen, scale, OverlayGlyphBox)
		}
		advanceBox := GlyphMetrics{
			Width:    m.Advance,
			Height:   em,
			BearingY: em,
		}
		verts = appendQuad(verts, advanceBox, pen, scale, OverlayAdvanceBox)
		pen.X += m.Advance * scale
	}
	return verts
}

// appendQuad appends the two triangles of one glyph quad.
func appendQuad(verts []Vertex, m GlyphMetrics, pen Point, scale float32, index int32) []Vertex {
	x0 := pen.X + m.BearingX*scale
	x1 := x0 + m.Width*scale
	y1 := pen.Y + m.BearingY*scale
	y0 := y1 - m.Height*scale

	u0 := m.BearingX
	u1 := m.BearingX + m.Width
	v1 := m.BearingY
	v0 := m.BearingY - m.Height

	bl := Vertex{X: x0, Y: y0, U: u0, V: v0, Index: index}
	br := Vertex{X: x1, Y: y0, U: u1, V: v0, Index: index}
	tr := Vertex{X: x1, Y: y1, U: u1, V: v1, Index: index}
	tl := Vertex{X: x0, Y: y1, U: u0, V: v1, Index: index}

	return append(verts, bl, br, tr, bl, tr, tl)
}
