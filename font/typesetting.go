package font

import (
	"bytes"
	"fmt"
	"sync"

	ot "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/vtext"
	"github.com/gogpu/vtext/cache"
)

// TypesettingSource yields glyph outlines via go-text/typesetting's font
// parser. It is the alternative to SFNTSource behind the same interface;
// typesetting reads a wider range of OpenType flavors (CFF outlines
// included) and reports coordinates y-up in font units directly.
//
// TypesettingSource is safe for concurrent use: ot.Face is not, so access
// is serialized, and extracted outlines are memoized in a sharded cache.
type TypesettingSource struct {
	mu   sync.Mutex // guards face
	face *ot.Face
	upem uint16

	outlines *cache.Sharded[uint32, cachedOutline]
}

// NewTypesettingSource parses font data (TTF or OTF).
func NewTypesettingSource(data []byte) (*TypesettingSource, error) {
	face, err := ot.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parsing font data: %w", err)
	}
	upem := face.Upem()
	if upem == 0 {
		upem = 2048
	}
	return &TypesettingSource{
		face:     face,
		upem:     upem,
		outlines: cache.New[uint32, cachedOutline](0, cache.Uint32Hasher),
	}, nil
}

// UnitsPerEm implements vtext.OutlineSource.
func (s *TypesettingSource) UnitsPerEm() uint16 {
	return s.upem
}

// HasGlyph implements vtext.OutlineSource.
func (s *TypesettingSource) HasGlyph(r rune) bool {
	s.mu.Lock()
	gid, ok := s.face.NominalGlyph(r)
	s.mu.Unlock()
	return ok && gid != 0
}

// UndefinedGlyph implements vtext.OutlineSource.
func (s *TypesettingSource) UndefinedGlyph() (vtext.GlyphOutline, error) {
	return s.glyphOutline(0)
}

// GlyphOutline implements vtext.OutlineSource. Unmapped characters yield the
// undefined glyph's outline.
func (s *TypesettingSource) GlyphOutline(r rune) (vtext.GlyphOutline, error) {
	s.mu.Lock()
	gid, ok := s.face.NominalGlyph(r)
	s.mu.Unlock()
	if !ok {
		gid = 0
	}
	return s.glyphOutline(uint32(gid))
}

func (s *TypesettingSource) glyphOutline(gid uint32) (vtext.GlyphOutline, error) {
	c := s.outlines.GetOrCreate(gid, func() cachedOutline {
		outline, err := s.extract(ot.GID(gid))
		return cachedOutline{outline: outline, err: err}
	})
	return c.outline, c.err
}

func (s *TypesettingSource) extract(gid ot.GID) (vtext.GlyphOutline, error) {
	s.mu.Lock()
	data := s.face.GlyphData(gid)
	advance := s.face.HorizontalAdvance(gid)
	s.mu.Unlock()

	var b contourBuilder
	switch data := data.(type) {
	case ot.GlyphOutline:
		for _, seg := range data.Segments {
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				b.MoveTo(segPoint(seg.Args[0]))
			case opentype.SegmentOpLineTo:
				b.LineTo(segPoint(seg.Args[0]))
			case opentype.SegmentOpQuadTo:
				b.QuadTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]))
			case opentype.SegmentOpCubeTo:
				b.CubeTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]), segPoint(seg.Args[2]))
			}
		}
	case nil:
		// Glyph without data (space): metrics only.
	default:
		// Bitmap and SVG glyphs have no outline to compile.
		return vtext.GlyphOutline{}, fmt.Errorf("font: glyph %d: %w", gid, ErrNoOutline)
	}
	contours := b.Finish()

	width, height, bearingX, bearingY := outlineMetrics(contours)
	return vtext.GlyphOutline{
		Contours: contours,
		Width:    width,
		Height:   height,
		BearingX: bearingX,
		BearingY: bearingY,
		Advance:  advance,
	}, nil
}

// segPoint converts a typesetting segment point (already y-up font units).
func segPoint(p ot.SegmentPoint) vtext.Point {
	return vtext.Pt(p.X, p.Y)
}
