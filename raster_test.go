package vtext

import "testing"

func TestGlyphImage(t *testing.T) {
	comp := compileTestFont(t)
	rz, err := NewRasterizer(DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}

	img := rz.GlyphImage(comp, 'A', 64)
	if img == nil {
		t.Fatal("GlyphImage returned nil for visible glyph")
	}

	b := img.Bounds()
	// 600 font units at 64px over a 1000 upem, plus margins.
	if b.Dx() < 38 || b.Dx() > 42 || b.Dy() < 38 || b.Dy() > 42 {
		t.Errorf("image size = %dx%d, want about 40x40", b.Dx(), b.Dy())
	}

	center := img.Pix[(b.Dy()/2)*img.Stride+b.Dx()/2]
	if center != 255 {
		t.Errorf("center alpha = %d, want 255", center)
	}
	if corner := img.Pix[0]; corner != 0 {
		t.Errorf("corner alpha = %d, want 0", corner)
	}
}

func TestGlyphImageEmptyGlyph(t *testing.T) {
	comp := compileTestFont(t)
	if _, err := comp.CompileGlyph(' ', GlyphOutline{Advance: 250}); err != nil {
		t.Fatal(err)
	}

	rz, err := NewRasterizer(DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}
	if img := rz.GlyphImage(comp, ' ', 64); img != nil {
		t.Error("expected nil image for empty glyph")
	}
}

func TestStringImage(t *testing.T) {
	comp := compileTestFont(t)
	rz, err := NewRasterizer(DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}

	img := rz.StringImage(comp, "AB", Pt(4, 4), 32, 96, 40)

	var filled int
	for _, a := range img.Pix {
		if a > 200 {
			filled++
		}
	}
	if filled == 0 {
		t.Fatal("no filled pixels rendered")
	}

	// Both glyphs are solid squares; the filled area is roughly two squares
	// of 600/1000*32 px each.
	side := 0.6 * 32
	expect := int(2 * side * side)
	if filled < expect/2 || filled > expect*2 {
		t.Errorf("filled pixels = %d, want about %d", filled, expect)
	}
}

func TestStringImageClipped(t *testing.T) {
	comp := compileTestFont(t)
	rz, err := NewRasterizer(DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}

	// Quads extending past the image bounds clip instead of panicking.
	img := rz.StringImage(comp, "AAAA", Pt(-10, -10), 64, 20, 20)
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestRasterizerWithCustomEvaluator(t *testing.T) {
	comp := compileTestFont(t)

	rz := NewRasterizerWithEvaluator(constantEvaluator(0.5))
	img := rz.GlyphImage(comp, 'A', 16)
	if img == nil {
		t.Fatal("nil image")
	}
	if got := img.Pix[0]; got != 128 {
		t.Errorf("alpha = %d, want 128", got)
	}
}

// constantEvaluator returns a fixed coverage everywhere.
type constantEvaluator float32

func (c constantEvaluator) Coverage(*FontCompilation, int32, Point, Point) float32 {
	return float32(c)
}
