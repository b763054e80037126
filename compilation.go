package vtext

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// OutlineSource yields per-character contour data for compilation.
// The font/ subpackage provides implementations backed by x/image/font/sfnt
// and go-text/typesetting.
type OutlineSource interface {
	// UndefinedGlyph returns the outline of the font's undefined glyph
	// (.notdef), compiled first into every FontCompilation.
	UndefinedGlyph() (GlyphOutline, error)

	// GlyphOutline returns the outline for r. For characters the font does
	// not map, implementations return the undefined glyph's outline.
	GlyphOutline(r rune) (GlyphOutline, error)

	// HasGlyph reports whether the font maps r to a glyph of its own.
	HasGlyph(r rune) bool

	// UnitsPerEm returns the font's design units per em. Callers use it to
	// convert design units to pixels.
	UnitsPerEm() uint16
}

// FontCompilation owns the compiled curve data for one font/character-set:
// the shared append-only curve buffer, the per-glyph index-range table, and
// the character-code lookup table. All three grow together and indices into
// them stay stable for the compilation's lifetime, which is what allows the
// GPU upload to be one flat array.
//
// A single producer owns the compilation while characters are added; once
// published for rasterization the structures are read-only and any number of
// concurrent readers are safe. Recompiling a character set means constructing
// a new FontCompilation.
type FontCompilation struct {
	mu  sync.Mutex
	src OutlineSource

	curves []Curve
	ranges []GlyphRange
	glyphs map[rune]GlyphMetrics

	undefined  GlyphMetrics
	unitsPerEm uint16

	// generation increments whenever compiled data grows. The gpu package
	// compares generations to re-upload only when glyphs were added.
	generation atomic.Uint64
}

// NewFontCompilation creates a compilation for the given outline source and
// compiles the undefined glyph at buffer index 0.
func NewFontCompilation(src OutlineSource) (*FontCompilation, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	c := &FontCompilation{
		src:        src,
		glyphs:     make(map[rune]GlyphMetrics),
		unitsPerEm: src.UnitsPerEm(),
	}

	outline, err := src.UndefinedGlyph()
	if err != nil {
		return nil, fmt.Errorf("vtext: loading undefined glyph: %w", err)
	}
	undef, err := c.compileOutline(outline)
	if err != nil {
		// A malformed .notdef leaves nothing to fall back to; reserve
		// index 0 with an empty range so lookups stay valid.
		Logger().Warn("undefined glyph rejected, using empty fallback", "err", err)
		c.ranges = append(c.ranges, GlyphRange{Start: 0, Count: 0})
		undef = GlyphMetrics{BufferIndex: 0}
	}
	c.undefined = undef
	return c, nil
}

// CompileGlyph compiles the outline under the given character code and
// returns its metrics. If r is already compiled, the existing metrics are
// returned untouched and the outline is ignored: duplicate compilation would
// orphan curves in the shared buffer.
//
// Malformed contours are rejected before anything is appended, so a failed
// glyph never corrupts the buffer; the caller receives the undefined glyph's
// metrics together with the error.
func (c *FontCompilation) CompileGlyph(r rune, outline GlyphOutline) (GlyphMetrics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.glyphs[r]; ok {
		return m, nil
	}

	m, err := c.compileOutline(outline)
	if err != nil {
		Logger().Warn("glyph rejected, falling back to undefined",
			"rune", string(r), "err", err)
		return c.undefined, err
	}
	c.glyphs[r] = m

	Logger().Debug("glyph compiled",
		"rune", string(r),
		"curves", m.CurveCount,
		"bufferIndex", m.BufferIndex,
		"bufferLen", len(c.curves))
	return m, nil
}

// compileOutline validates and appends one glyph's contours.
// Caller holds c.mu (or is the constructor with exclusive access).
func (c *FontCompilation) compileOutline(outline GlyphOutline) (GlyphMetrics, error) {
	for _, contour := range outline.Contours {
		if err := contour.Validate(); err != nil {
			return GlyphMetrics{}, err
		}
	}

	glyphStart := uint32(len(c.curves))
	for _, contour := range outline.Contours {
		c.curves = appendContour(c.curves, contour)
	}
	count := uint32(len(c.curves)) - glyphStart

	index := int32(len(c.ranges))
	c.ranges = append(c.ranges, GlyphRange{Start: glyphStart, Count: count})
	c.generation.Add(1)

	return GlyphMetrics{
		Width:       outline.Width,
		Height:      outline.Height,
		BearingX:    outline.BearingX,
		BearingY:    outline.BearingY,
		Advance:     outline.Advance,
		BufferIndex: index,
		CurveCount:  count,
	}, nil
}

// Ensure compiles every rune in rs that is not already compiled, pulling
// outlines from the compilation's source. Malformed glyphs fall back to the
// undefined glyph and do not abort the batch; source errors do.
func (c *FontCompilation) Ensure(rs []rune) error {
	for _, r := range rs {
		c.mu.Lock()
		_, ok := c.glyphs[r]
		c.mu.Unlock()
		if ok {
			continue
		}

		if !c.src.HasGlyph(r) {
			// Map the rune straight to the undefined glyph instead of
			// compiling a duplicate copy of .notdef's curves.
			Logger().Warn("character not in font, using undefined glyph",
				"rune", string(r))
			c.mu.Lock()
			c.glyphs[r] = c.undefined
			c.mu.Unlock()
			continue
		}

		outline, err := c.src.GlyphOutline(r)
		if err != nil {
			return fmt.Errorf("vtext: loading outline for %q: %w", r, err)
		}
		if _, err := c.CompileGlyph(r, outline); err != nil {
			// Already logged; the rune resolves to the undefined glyph.
			continue
		}
	}
	return nil
}

// CompileString compiles every character of s not yet present.
func (c *FontCompilation) CompileString(s string) error {
	return c.Ensure([]rune(s))
}

// Glyph returns the metrics for r, or the undefined glyph's metrics if r was
// never compiled. Rendering a string never fails on missing characters.
func (c *FontCompilation) Glyph(r rune) GlyphMetrics {
	c.mu.Lock()
	m, ok := c.glyphs[r]
	c.mu.Unlock()
	if !ok {
		return c.undefined
	}
	return m
}

// Has reports whether r has been compiled.
func (c *FontCompilation) Has(r rune) bool {
	c.mu.Lock()
	_, ok := c.glyphs[r]
	c.mu.Unlock()
	return ok
}

// Range returns the glyph range for a buffer index. The second result is
// false for out-of-table indices, including the diagnostic sentinels.
func (c *FontCompilation) Range(index int32) (GlyphRange, bool) {
	if index < 0 || int(index) >= len(c.ranges) {
		return GlyphRange{}, false
	}
	return c.ranges[index], true
}

// Curves returns the shared curve buffer. The slice must be treated as
// read-only; it is aliased by every glyph range and by in-flight
// rasterization passes.
func (c *FontCompilation) Curves() []Curve {
	return c.curves
}

// Ranges returns the glyph index-range table, read-only.
func (c *FontCompilation) Ranges() []GlyphRange {
	return c.ranges
}

// CurveCount returns the number of compiled curves.
func (c *FontCompilation) CurveCount() int {
	return len(c.curves)
}

// GlyphCount returns the number of compiled glyph ranges, including the
// undefined glyph.
func (c *FontCompilation) GlyphCount() int {
	return len(c.ranges)
}

// UnitsPerEm returns the font's design units per em.
func (c *FontCompilation) UnitsPerEm() uint16 {
	return c.unitsPerEm
}

// Generation returns a counter that increments whenever compiled data grows.
func (c *FontCompilation) Generation() uint64 {
	return c.generation.Load()
}
