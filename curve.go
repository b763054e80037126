package vtext

// Curve is one quadratic Bezier segment in font design units.
// P0 and P2 are on-curve endpoints; P1 is the control point. For a straight
// edge, P1 is the midpoint of P0 and P2 (a degenerate linear segment), which
// lets the coverage rasterizer treat every segment uniformly.
//
// A Curve is immutable once appended to a FontCompilation's buffer.
type Curve struct {
	P0, P1, P2 Point
}

// LinearCurve creates a degenerate quadratic representing the straight
// segment from p0 to p2.
func LinearCurve(p0, p2 Point) Curve {
	return Curve{P0: p0, P1: p0.Midpoint(p2), P2: p2}
}

// Eval evaluates the curve at parameter t in [0, 1].
func (c Curve) Eval(t float32) Point {
	mt := 1 - t
	a := c.P0.Mul(mt * mt)
	b := c.P1.Mul(2 * mt * t)
	d := c.P2.Mul(t * t)
	return a.Add(b).Add(d)
}

// IsLinear reports whether the control point coincides with the midpoint
// of the endpoints within tol.
func (c Curve) IsLinear(tol float32) bool {
	mid := c.P0.Midpoint(c.P2)
	d := c.P1.Sub(mid)
	return d.X >= -tol && d.X <= tol && d.Y >= -tol && d.Y <= tol
}

// Reversed returns the curve traversed in the opposite direction.
func (c Curve) Reversed() Curve {
	return Curve{P0: c.P2, P1: c.P1, P2: c.P0}
}
