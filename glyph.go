package vtext

// GlyphRange identifies a contiguous slice of the curve buffer belonging to
// one glyph. Invariant: Start+Count <= len(curve buffer) for the buffer the
// range was compiled into. A glyph's position in the range table is its
// buffer index, carried per-vertex so the coverage shader knows which curves
// to test.
type GlyphRange struct {
	// Start is the index of the glyph's first curve in the buffer.
	Start uint32

	// Count is the number of curves belonging to the glyph.
	// Zero for glyphs without contours (e.g. space).
	Count uint32
}

// GlyphMetrics holds per-character metrics in font design units, unscaled by
// any target pixel size, plus the glyph's location in the compiled tables.
// Created once when a character is first compiled; never mutated.
type GlyphMetrics struct {
	// Width and Height are the glyph's bounding box extents.
	Width, Height float32

	// BearingX is the horizontal distance from the origin to the left edge
	// of the bounding box. BearingY is the vertical distance from the
	// baseline to the top edge.
	BearingX, BearingY float32

	// Advance is how far the pen moves after drawing the glyph.
	Advance float32

	// BufferIndex is the glyph's position in the range table.
	BufferIndex int32

	// CurveCount is the number of curves compiled for the glyph.
	CurveCount uint32
}

// GlyphOutline is the raw per-character contour data an outline source
// yields for compilation: closed contours of tagged points plus metrics,
// all in font design units.
type GlyphOutline struct {
	Contours []Contour

	Width, Height      float32
	BearingX, BearingY float32
	Advance            float32
}
