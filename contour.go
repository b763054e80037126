package vtext

// PointTag classifies a contour point as on-curve or as a Bezier control
// point, following the TrueType/CFF outline model.
type PointTag uint8

const (
	// TagOnCurve marks a point the outline passes through.
	TagOnCurve PointTag = iota

	// TagQuadControl marks a quadratic Bezier control point.
	TagQuadControl

	// TagCubicControl marks a cubic Bezier control point.
	// Cubic controls always appear in pairs between on-curve points.
	TagCubicControl
)

// String returns the string representation of the tag.
func (t PointTag) String() string {
	switch t {
	case TagOnCurve:
		return "OnCurve"
	case TagQuadControl:
		return "QuadControl"
	case TagCubicControl:
		return "CubicControl"
	default:
		return "Unknown"
	}
}

// ContourPoint is one tagged point of a glyph contour, in font design units.
type ContourPoint struct {
	Pos Point
	Tag PointTag
}

// Contour is one closed loop of a glyph outline: an ordered list of tagged
// points plus the font's reversed-fill flag. The point stream is transient;
// it is consumed by the compiler and discarded after producing curves.
type Contour struct {
	// Points is the raw on/off-curve point sequence.
	Points []ContourPoint

	// Reversed indicates the contour's declared orientation is opposite to
	// the compiler's fixed winding convention. The compiler walks reversed
	// contours back to front so the coverage rasterizer can assume a single
	// inside/outside sign convention.
	Reversed bool
}

// Validate checks the contour's tag sequencing. Malformed sequences corrupt
// the shared append-only curve buffer if compiled, so the compiler rejects
// the glyph before touching the buffer.
//
// The rules, treating the point list as circular:
//   - cubic control points appear in runs of exactly two, anchored by
//     on-curve points on both sides
//   - quadratic control runs may have any length (consecutive quadratic
//     controls imply virtual on-curve midpoints)
//   - quadratic and cubic controls never share a run
//   - a contour with no on-curve points must be quadratic-only
func (c Contour) Validate() error {
	n := len(c.Points)
	if n == 0 {
		return nil
	}

	hasOnCurve := false
	for _, p := range c.Points {
		if p.Tag == TagOnCurve {
			hasOnCurve = true
			break
		}
	}

	if !hasOnCurve {
		for _, p := range c.Points {
			if p.Tag == TagCubicControl {
				return ErrMalformedContour
			}
		}
		return nil
	}

	// Rotate to start at an on-curve point, then scan off-curve runs.
	start := 0
	for c.Points[start].Tag != TagOnCurve {
		start++
	}

	runLen := 0
	runCubic := false
	runQuad := false
	for i := 1; i <= n; i++ {
		p := c.Points[(start+i)%n]
		if p.Tag == TagOnCurve {
			if runCubic && (runQuad || runLen != 2) {
				return ErrMalformedContour
			}
			runLen, runCubic, runQuad = 0, false, false
			continue
		}
		runLen++
		if p.Tag == TagCubicControl {
			runCubic = true
		} else {
			runQuad = true
		}
	}
	return nil
}

// hasDistinctPoints reports whether the contour contains at least two
// distinct point positions. Contours without two distinct points produce
// no curves.
func (c Contour) hasDistinctPoints() bool {
	if len(c.Points) < 2 {
		return false
	}
	first := c.Points[0].Pos
	for _, p := range c.Points[1:] {
		if p.Pos != first {
			return true
		}
	}
	return false
}
