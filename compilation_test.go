package vtext

import (
	"errors"
	"testing"
)

// fakeSource is an in-memory OutlineSource for tests. Glyph shapes are
// axis-aligned squares, which make coverage values exactly predictable.
type fakeSource struct {
	glyphs map[rune]GlyphOutline
	notdef GlyphOutline
	upem   uint16
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		glyphs: map[rune]GlyphOutline{
			'A': squareOutline(100, 100, 700, 700, 800),
			'B': squareOutline(50, 0, 650, 600, 700),
		},
		notdef: squareOutline(0, 0, 500, 500, 500),
		upem:   1000,
	}
}

func (s *fakeSource) UndefinedGlyph() (GlyphOutline, error) { return s.notdef, nil }

func (s *fakeSource) GlyphOutline(r rune) (GlyphOutline, error) {
	if o, ok := s.glyphs[r]; ok {
		return o, nil
	}
	return s.notdef, nil
}

func (s *fakeSource) HasGlyph(r rune) bool {
	_, ok := s.glyphs[r]
	return ok
}

func (s *fakeSource) UnitsPerEm() uint16 { return s.upem }

// squareOutline builds a clockwise (y-up) square from (x0, y0) to (x1, y1).
// Clockwise contours fill with positive winding under the evaluator's
// convention.
func squareOutline(x0, y0, x1, y1, advance float32) GlyphOutline {
	return GlyphOutline{
		Contours: []Contour{squareContour(x0, y0, x1, y1)},
		Width:    x1 - x0,
		Height:   y1 - y0,
		BearingX: x0,
		BearingY: y1,
		Advance:  advance,
	}
}

func squareContour(x0, y0, x1, y1 float32) Contour {
	return Contour{
		Points: []ContourPoint{
			{Pos: Pt(x0, y1), Tag: TagOnCurve},
			{Pos: Pt(x1, y1), Tag: TagOnCurve},
			{Pos: Pt(x1, y0), Tag: TagOnCurve},
			{Pos: Pt(x0, y0), Tag: TagOnCurve},
		},
	}
}

func TestNewFontCompilation(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatalf("NewFontCompilation: %v", err)
	}

	// The undefined glyph occupies buffer index 0.
	if comp.GlyphCount() != 1 {
		t.Errorf("GlyphCount = %d, want 1", comp.GlyphCount())
	}
	rng, ok := comp.Range(0)
	if !ok {
		t.Fatal("Range(0) not found")
	}
	if rng.Start != 0 || rng.Count != 4 {
		t.Errorf("undefined range = %+v, want {Start:0 Count:4}", rng)
	}
}

func TestNewFontCompilationNilSource(t *testing.T) {
	if _, err := NewFontCompilation(nil); !errors.Is(err, ErrNilSource) {
		t.Errorf("err = %v, want ErrNilSource", err)
	}
}

func TestCompileString(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}
	if err := comp.CompileString("AB"); err != nil {
		t.Fatalf("CompileString: %v", err)
	}

	if !comp.Has('A') || !comp.Has('B') {
		t.Fatal("expected A and B to be compiled")
	}

	m := comp.Glyph('A')
	if m.Width != 600 || m.Height != 600 {
		t.Errorf("A size = %vx%v, want 600x600", m.Width, m.Height)
	}
	if m.Advance != 800 {
		t.Errorf("A advance = %v, want 800", m.Advance)
	}
	if m.BufferIndex == 0 {
		t.Error("A should not share the undefined glyph's index")
	}
}

func TestRangesPartitionCurveBuffer(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}
	if err := comp.CompileString("AB"); err != nil {
		t.Fatal(err)
	}

	// Ranges tile the curve buffer contiguously, in compilation order.
	var next uint32
	for i, rng := range comp.Ranges() {
		if rng.Start != next {
			t.Errorf("range %d starts at %d, want %d", i, rng.Start, next)
		}
		next = rng.Start + rng.Count
	}
	if int(next) != comp.CurveCount() {
		t.Errorf("ranges cover %d curves, buffer has %d", next, comp.CurveCount())
	}
}

func TestCompileGlyphDuplicate(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}
	if err := comp.CompileString("A"); err != nil {
		t.Fatal(err)
	}

	before := comp.Glyph('A')
	curves := comp.CurveCount()
	gen := comp.Generation()

	// Recompiling the same character must not grow the buffer.
	after, err := comp.CompileGlyph('A', squareOutline(0, 0, 10, 10, 10))
	if err != nil {
		t.Fatalf("CompileGlyph: %v", err)
	}
	if after != before {
		t.Errorf("metrics changed on duplicate compile: %+v != %+v", after, before)
	}
	if comp.CurveCount() != curves {
		t.Errorf("curve buffer grew on duplicate compile: %d -> %d", curves, comp.CurveCount())
	}
	if comp.Generation() != gen {
		t.Errorf("generation moved on duplicate compile")
	}
}

func TestEnsureUnmappedRune(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}

	curves := comp.CurveCount()
	if err := comp.Ensure([]rune{'7'}); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	// Unmapped characters resolve to the undefined glyph without compiling
	// a duplicate copy of its curves.
	if comp.CurveCount() != curves {
		t.Errorf("curve buffer grew for unmapped rune: %d -> %d", curves, comp.CurveCount())
	}
	m := comp.Glyph('7')
	if m.BufferIndex != 0 {
		t.Errorf("unmapped rune index = %d, want 0", m.BufferIndex)
	}
}

func TestCompileGlyphMalformed(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}

	curves := comp.CurveCount()
	ranges := comp.GlyphCount()

	// A lone cubic control run of length one is malformed.
	bad := GlyphOutline{
		Contours: []Contour{{
			Points: []ContourPoint{
				{Pos: Pt(0, 0), Tag: TagOnCurve},
				{Pos: Pt(10, 10), Tag: TagCubicControl},
				{Pos: Pt(20, 0), Tag: TagOnCurve},
			},
		}},
		Width: 20, Height: 10, Advance: 20,
	}

	m, err := comp.CompileGlyph('X', bad)
	if !errors.Is(err, ErrMalformedContour) {
		t.Fatalf("err = %v, want ErrMalformedContour", err)
	}
	if m.BufferIndex != 0 {
		t.Errorf("fallback index = %d, want undefined glyph at 0", m.BufferIndex)
	}
	// Nothing may have been appended.
	if comp.CurveCount() != curves || comp.GlyphCount() != ranges {
		t.Error("rejected glyph mutated the compilation")
	}
	if comp.Has('X') {
		t.Error("rejected glyph was recorded")
	}
}

func TestGenerationTracksGrowth(t *testing.T) {
	comp, err := NewFontCompilation(newFakeSource())
	if err != nil {
		t.Fatal(err)
	}

	g0 := comp.Generation()
	if err := comp.CompileString("A"); err != nil {
		t.Fatal(err)
	}
	g1 := comp.Generation()
	if g1 <= g0 {
		t.Errorf("generation did not advance: %d -> %d", g0, g1)
	}
	if err := comp.CompileString("A"); err != nil {
		t.Fatal(err)
	}
	if comp.Generation() != g1 {
		t.Error("generation advanced without growth")
	}
}
