package vtext

import "testing"

func TestAppendContourRectangle(t *testing.T) {
	// A closed rectangle of on-curve points compiles to exactly one linear
	// curve per side.
	curves := appendContour(nil, squareContour(0, 0, 100, 200))
	if len(curves) != 4 {
		t.Fatalf("len(curves) = %d, want 4", len(curves))
	}

	for i, c := range curves {
		if !c.IsLinear(1e-6) {
			t.Errorf("curve %d is not linear: %+v", i, c)
		}
	}

	// The walk must return to its starting point.
	if curves[len(curves)-1].P2 != curves[0].P0 {
		t.Errorf("contour not closed: ends at %v, starts at %v",
			curves[len(curves)-1].P2, curves[0].P0)
	}
}

func TestAppendContourQuadratic(t *testing.T) {
	contour := Contour{
		Points: []ContourPoint{
			{Pos: Pt(0, 0), Tag: TagOnCurve},
			{Pos: Pt(50, 100), Tag: TagQuadControl},
			{Pos: Pt(100, 0), Tag: TagOnCurve},
		},
	}

	curves := appendContour(nil, contour)
	if len(curves) != 2 {
		t.Fatalf("len(curves) = %d, want 2", len(curves))
	}

	// The quadratic segment keeps its control point verbatim.
	want := Curve{P0: Pt(0, 0), P1: Pt(50, 100), P2: Pt(100, 0)}
	if curves[0] != want {
		t.Errorf("curves[0] = %+v, want %+v", curves[0], want)
	}
	// The closing segment is the base line.
	if !curves[1].IsLinear(1e-6) {
		t.Errorf("closing curve is not linear: %+v", curves[1])
	}
}

func TestAppendContourImpliedMidpoints(t *testing.T) {
	// Two consecutive quadratic controls imply a virtual on-curve point at
	// their midpoint.
	contour := Contour{
		Points: []ContourPoint{
			{Pos: Pt(0, 0), Tag: TagOnCurve},
			{Pos: Pt(0, 100), Tag: TagQuadControl},
			{Pos: Pt(100, 100), Tag: TagQuadControl},
			{Pos: Pt(100, 0), Tag: TagOnCurve},
		},
	}

	curves := appendContour(nil, contour)
	if len(curves) != 3 {
		t.Fatalf("len(curves) = %d, want 3", len(curves))
	}

	mid := Pt(50, 100)
	if curves[0].P2 != mid {
		t.Errorf("first segment ends at %v, want implied midpoint %v", curves[0].P2, mid)
	}
	if curves[1].P0 != mid {
		t.Errorf("second segment starts at %v, want implied midpoint %v", curves[1].P0, mid)
	}
}

func TestAppendContourCubicSplit(t *testing.T) {
	p0 := Pt(0, 0)
	c0 := Pt(0, 100)
	c1 := Pt(100, 100)
	p3 := Pt(100, 0)
	contour := Contour{
		Points: []ContourPoint{
			{Pos: p0, Tag: TagOnCurve},
			{Pos: c0, Tag: TagCubicControl},
			{Pos: c1, Tag: TagCubicControl},
			{Pos: p3, Tag: TagOnCurve},
		},
	}

	curves := appendContour(nil, contour)
	// Two quadratics for the cubic, one linear closing segment.
	if len(curves) != 3 {
		t.Fatalf("len(curves) = %d, want 3", len(curves))
	}

	// The split uses the 3/4-point construction.
	q0 := p0.Add(c0.Sub(p0).Mul(0.75))
	q1 := p3.Add(c1.Sub(p3).Mul(0.75))
	mid := q0.Midpoint(q1)

	if curves[0].P1 != q0 || curves[0].P2 != mid {
		t.Errorf("first half = %+v, want control %v end %v", curves[0], q0, mid)
	}
	if curves[1].P0 != mid || curves[1].P1 != q1 || curves[1].P2 != p3 {
		t.Errorf("second half = %+v, want %v %v %v", curves[1], mid, q1, p3)
	}

	// The join must be continuous.
	if curves[0].P2 != curves[1].P0 {
		t.Error("cubic halves do not join")
	}
}

func TestAppendContourAllQuadControls(t *testing.T) {
	// TrueType allows contours with no on-curve points at all; every point
	// pair implies a virtual on-curve midpoint.
	contour := Contour{
		Points: []ContourPoint{
			{Pos: Pt(0, 100), Tag: TagQuadControl},
			{Pos: Pt(100, 100), Tag: TagQuadControl},
			{Pos: Pt(100, 0), Tag: TagQuadControl},
			{Pos: Pt(0, 0), Tag: TagQuadControl},
		},
	}

	curves := appendContour(nil, contour)
	if len(curves) != 4 {
		t.Fatalf("len(curves) = %d, want 4", len(curves))
	}
	if curves[len(curves)-1].P2 != curves[0].P0 {
		t.Error("contour not closed")
	}
}

func TestAppendContourReversed(t *testing.T) {
	contour := squareContour(0, 0, 100, 100)
	forward := appendContour(nil, contour)

	contour.Reversed = true
	backward := appendContour(nil, contour)

	if len(forward) != len(backward) {
		t.Fatalf("curve counts differ: %d vs %d", len(forward), len(backward))
	}

	// A reversed walk emits the same geometry in the opposite direction:
	// every forward segment appears with its endpoints swapped.
	for i, f := range forward {
		found := false
		for _, b := range backward {
			if b.P0 == f.P2 && b.P2 == f.P0 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("curve %d has no reversed counterpart: %+v", i, f)
		}
	}
}

func TestAppendContourDegenerate(t *testing.T) {
	cases := []struct {
		name    string
		contour Contour
	}{
		{"empty", Contour{}},
		{"single point", Contour{Points: []ContourPoint{
			{Pos: Pt(5, 5), Tag: TagOnCurve},
		}}},
		{"coincident points", Contour{Points: []ContourPoint{
			{Pos: Pt(5, 5), Tag: TagOnCurve},
			{Pos: Pt(5, 5), Tag: TagOnCurve},
			{Pos: Pt(5, 5), Tag: TagOnCurve},
		}}},
	}

	for _, tc := range cases {
		if curves := appendContour(nil, tc.contour); len(curves) != 0 {
			t.Errorf("%s: emitted %d curves, want 0", tc.name, len(curves))
		}
	}
}

func TestAppendContourGrowsBuffer(t *testing.T) {
	// Compiling into an existing buffer appends without touching prior data.
	buf := appendContour(nil, squareContour(0, 0, 10, 10))
	first := buf[0]

	buf = appendContour(buf, squareContour(20, 20, 30, 30))
	if len(buf) != 8 {
		t.Fatalf("len(buf) = %d, want 8", len(buf))
	}
	if buf[0] != first {
		t.Error("existing curves were modified")
	}
}
