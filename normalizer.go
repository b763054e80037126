package vtext

// appendContour walks one contour's raw tagged points and appends the
// quadratic curves describing it to buf, returning the grown buffer.
// Quadratic and linear segments are emitted exactly; cubic segments are
// approximated by two quadratics using the 3/4-point construction.
//
// If the contour is marked Reversed the points are walked back to front,
// which flips the emitted direction and keeps the inside/outside sign
// consistent for the coverage rasterizer.
//
// Malformed tag sequences are not defended against here; callers validate
// contours at the font-loading boundary (see Contour.Validate).
func appendContour(buf []Curve, contour Contour) []Curve {
	if !contour.hasDistinctPoints() {
		return buf
	}

	n := len(contour.Points)
	at := func(i int) ContourPoint {
		if contour.Reversed {
			return contour.Points[n-1-i]
		}
		return contour.Points[i]
	}

	// Choose the first on-curve point: the literal first if on-curve, else
	// the literal last, else a virtual midpoint of the two (neither consumed).
	lo, hi := 0, n
	var first Point
	switch {
	case at(0).Tag == TagOnCurve:
		first = at(0).Pos
		lo = 1
	case at(n - 1).Tag == TagOnCurve:
		first = at(n - 1).Pos
		hi = n - 1
	default:
		first = at(0).Pos.Midpoint(at(n - 1).Pos)
	}

	start := first    // current on-curve anchor
	control := first  // pending control for cubic accumulation
	previous := first // previously visited point
	previousTag := TagOnCurve

	// close emits the segment pending between start and current.
	close := func(current Point) {
		switch previousTag {
		case TagCubicControl:
			// Approximate the cubic (start, control, previous, current)
			// with two quadratics.
			c0 := start.Add(control.Sub(start).Mul(0.75))
			c1 := current.Add(previous.Sub(current).Mul(0.75))
			mid := c0.Midpoint(c1)
			buf = append(buf, Curve{P0: start, P1: c0, P2: mid})
			buf = append(buf, Curve{P0: mid, P1: c1, P2: current})
		case TagOnCurve:
			buf = append(buf, LinearCurve(previous, current))
		default:
			buf = append(buf, Curve{P0: start, P1: previous, P2: current})
		}
	}

	for i := lo; i < hi; i++ {
		p := at(i)
		switch p.Tag {
		case TagCubicControl:
			// Defer: a cubic needs two controls before it can close.
			control = previous

		case TagOnCurve:
			close(p.Pos)
			start = p.Pos
			control = p.Pos

		case TagQuadControl:
			// Two consecutive quadratic controls imply a virtual on-curve
			// point at their midpoint.
			if previousTag != TagOnCurve {
				mid := previous.Midpoint(p.Pos)
				buf = append(buf, Curve{P0: start, P1: previous, P2: mid})
				start = mid
				control = mid
			}
		}
		previous = p.Pos
		previousTag = p.Tag
	}

	// Close the contour back to the first point.
	close(first)
	return buf
}
