package font

import (
	"testing"

	"github.com/gogpu/vtext"
)

func TestBuilderDropsClosingDuplicate(t *testing.T) {
	// Parsers emit the starting point again before closing; the compiler
	// closes contours itself, so the duplicate must go.
	var b contourBuilder
	b.MoveTo(vtext.Pt(0, 100))
	b.LineTo(vtext.Pt(100, 100))
	b.LineTo(vtext.Pt(100, 0))
	b.LineTo(vtext.Pt(0, 0))
	b.LineTo(vtext.Pt(0, 100))
	contours := b.Finish()

	if len(contours) != 1 {
		t.Fatalf("len(contours) = %d, want 1", len(contours))
	}
	if got := len(contours[0].Points); got != 4 {
		t.Errorf("point count = %d, want 4", got)
	}
}

func TestBuilderMoveToStartsNewContour(t *testing.T) {
	var b contourBuilder
	b.MoveTo(vtext.Pt(0, 0))
	b.LineTo(vtext.Pt(10, 0))
	b.LineTo(vtext.Pt(10, 10))
	b.MoveTo(vtext.Pt(20, 20))
	b.QuadTo(vtext.Pt(25, 30), vtext.Pt(30, 20))
	b.LineTo(vtext.Pt(20, 20))
	contours := b.Finish()

	if len(contours) != 2 {
		t.Fatalf("len(contours) = %d, want 2", len(contours))
	}
	if got := contours[1].Points[1].Tag; got != vtext.TagQuadControl {
		t.Errorf("second contour control tag = %v", got)
	}
}

func TestBuilderCubicTags(t *testing.T) {
	var b contourBuilder
	b.MoveTo(vtext.Pt(0, 0))
	b.CubeTo(vtext.Pt(0, 10), vtext.Pt(10, 10), vtext.Pt(10, 0))
	contours := b.Finish()

	pts := contours[0].Points
	want := []vtext.PointTag{
		vtext.TagOnCurve, vtext.TagCubicControl, vtext.TagCubicControl, vtext.TagOnCurve,
	}
	if len(pts) != len(want) {
		t.Fatalf("point count = %d, want %d", len(pts), len(want))
	}
	for i, w := range want {
		if pts[i].Tag != w {
			t.Errorf("point %d tag = %v, want %v", i, pts[i].Tag, w)
		}
	}
	if err := contours[0].Validate(); err != nil {
		t.Errorf("cubic contour invalid: %v", err)
	}
}

func TestMarkReversed(t *testing.T) {
	cw := func() vtext.Contour { // clockwise in y-up space
		return vtext.Contour{Points: []vtext.ContourPoint{
			{Pos: vtext.Pt(0, 100), Tag: vtext.TagOnCurve},
			{Pos: vtext.Pt(100, 100), Tag: vtext.TagOnCurve},
			{Pos: vtext.Pt(100, 0), Tag: vtext.TagOnCurve},
			{Pos: vtext.Pt(0, 0), Tag: vtext.TagOnCurve},
		}}
	}
	ccw := func() vtext.Contour {
		c := cw()
		for i, j := 0, len(c.Points)-1; i < j; i, j = i+1, j-1 {
			c.Points[i], c.Points[j] = c.Points[j], c.Points[i]
		}
		return c
	}

	// TrueType convention: clockwise outers stay as they are.
	tt := []vtext.Contour{cw()}
	markReversed(tt)
	if tt[0].Reversed {
		t.Error("clockwise outer flagged reversed")
	}

	// CFF convention: counter-clockwise outers flip, and every contour of
	// the glyph flips with them.
	cff := []vtext.Contour{ccw(), cw()}
	markReversed(cff)
	if !cff[0].Reversed || !cff[1].Reversed {
		t.Error("counter-clockwise glyph not flagged reversed")
	}
}

func TestSignedAreaSign(t *testing.T) {
	cw := vtext.Contour{Points: []vtext.ContourPoint{
		{Pos: vtext.Pt(0, 10)},
		{Pos: vtext.Pt(10, 10)},
		{Pos: vtext.Pt(10, 0)},
		{Pos: vtext.Pt(0, 0)},
	}}
	if a := signedArea(cw); a >= 0 {
		t.Errorf("clockwise area = %v, want negative", a)
	}
	if a := signedArea(vtext.Contour{}); a != 0 {
		t.Errorf("empty area = %v, want 0", a)
	}
}

func TestOutlineMetrics(t *testing.T) {
	contours := []vtext.Contour{{Points: []vtext.ContourPoint{
		{Pos: vtext.Pt(50, 700)},
		{Pos: vtext.Pt(650, 700)},
		{Pos: vtext.Pt(650, -200)},
		{Pos: vtext.Pt(50, -200)},
	}}}

	w, h, bx, by := outlineMetrics(contours)
	if w != 600 || h != 900 {
		t.Errorf("size = %vx%v, want 600x900", w, h)
	}
	if bx != 50 || by != 700 {
		t.Errorf("bearing = (%v, %v), want (50, 700)", bx, by)
	}

	if w, h, _, _ := outlineMetrics(nil); w != 0 || h != 0 {
		t.Error("empty outline should have zero metrics")
	}
}
