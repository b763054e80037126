package font

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vtext"
	"github.com/gogpu/vtext/cache"
)

// SFNTSource yields glyph outlines from a TrueType/OpenType font via
// golang.org/x/image/font/sfnt. Outlines are loaded at ppem == unitsPerEm so
// coordinates come out in unscaled font design units, then flipped to y-up
// (sfnt segments run y-down).
//
// SFNTSource is safe for concurrent use: the sfnt working buffer is guarded
// by a mutex and extracted outlines are memoized in a sharded cache.
type SFNTSource struct {
	font *sfnt.Font
	upem uint16

	mu  sync.Mutex // guards buf
	buf sfnt.Buffer

	outlines *cache.Sharded[uint32, cachedOutline]
}

type cachedOutline struct {
	outline vtext.GlyphOutline
	err     error
}

// NewSFNTSource parses font data (TTF or OTF).
func NewSFNTSource(data []byte) (*SFNTSource, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parsing sfnt data: %w", err)
	}
	upem := uint16(f.UnitsPerEm())
	if upem == 0 {
		upem = 2048
	}
	return &SFNTSource{
		font:     f,
		upem:     upem,
		outlines: cache.New[uint32, cachedOutline](0, cache.Uint32Hasher),
	}, nil
}

// UnitsPerEm implements vtext.OutlineSource.
func (s *SFNTSource) UnitsPerEm() uint16 {
	return s.upem
}

// HasGlyph implements vtext.OutlineSource.
func (s *SFNTSource) HasGlyph(r rune) bool {
	s.mu.Lock()
	gid, err := s.font.GlyphIndex(&s.buf, r)
	s.mu.Unlock()
	return err == nil && gid != 0
}

// UndefinedGlyph implements vtext.OutlineSource: the outline of .notdef
// (glyph index 0).
func (s *SFNTSource) UndefinedGlyph() (vtext.GlyphOutline, error) {
	return s.glyphOutline(0)
}

// GlyphOutline implements vtext.OutlineSource. Unmapped characters yield the
// undefined glyph's outline.
func (s *SFNTSource) GlyphOutline(r rune) (vtext.GlyphOutline, error) {
	s.mu.Lock()
	gid, err := s.font.GlyphIndex(&s.buf, r)
	s.mu.Unlock()
	if err != nil {
		return vtext.GlyphOutline{}, fmt.Errorf("font: glyph index for %q: %w", r, err)
	}
	return s.glyphOutline(uint32(gid))
}

func (s *SFNTSource) glyphOutline(gid uint32) (vtext.GlyphOutline, error) {
	c := s.outlines.GetOrCreate(gid, func() cachedOutline {
		outline, err := s.extract(sfnt.GlyphIndex(gid))
		return cachedOutline{outline: outline, err: err}
	})
	return c.outline, c.err
}

// extract loads one glyph's segments and converts them to tagged contours.
func (s *SFNTSource) extract(gid sfnt.GlyphIndex) (vtext.GlyphOutline, error) {
	ppem := fixed.I(int(s.upem))

	s.mu.Lock()
	segments, err := s.font.LoadGlyph(&s.buf, gid, ppem, nil)
	if err != nil {
		s.mu.Unlock()
		return vtext.GlyphOutline{}, fmt.Errorf("font: loading glyph %d: %w", gid, err)
	}
	advance, err := s.font.GlyphAdvance(&s.buf, gid, ppem, 0)
	s.mu.Unlock()
	if err != nil {
		return vtext.GlyphOutline{}, fmt.Errorf("font: advance for glyph %d: %w", gid, err)
	}

	var b contourBuilder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubeTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]), fixedPoint(seg.Args[2]))
		}
	}
	contours := b.Finish()

	width, height, bearingX, bearingY := outlineMetrics(contours)
	return vtext.GlyphOutline{
		Contours: contours,
		Width:    width,
		Height:   height,
		BearingX: bearingX,
		BearingY: bearingY,
		Advance:  float32(advance) / 64,
	}, nil
}

// fixedPoint converts a 26.6 fixed point to float font units, flipping the
// y axis from sfnt's y-down convention to curve-space y-up.
func fixedPoint(p fixed.Point26_6) vtext.Point {
	return vtext.Pt(float32(p.X)/64, -float32(p.Y)/64)
}
