package vtext

import "math"

// Diagnostic sentinel buffer indices. Real buffer indices start at 0 and
// increase, so negative values can never collide with a compiled glyph.
// Quads tagged with a sentinel bypass curve evaluation entirely and render
// as fixed translucent overlays.
const (
	// OverlayGlyphBox draws the glyph bounding box overlay.
	OverlayGlyphBox int32 = -1

	// OverlayAdvanceBox draws the advance-width overlay.
	OverlayAdvanceBox int32 = -2
)

// Fixed coverage values for the diagnostic overlays.
const (
	overlayGlyphBoxCoverage   = 0.25
	overlayAdvanceBoxCoverage = 0.15
)

const (
	// rootEpsilon decides when the quadratic's leading coefficient is too
	// small to divide by and the near-linear branch takes over.
	rootEpsilon = 1e-5

	// footprintFloor is the hard lower bound on the per-axis pixel
	// footprint. A near-zero derivative occurs at silhouette points nearly
	// parallel to a screen axis; dividing by it produces the historical
	// horizontal/vertical line artifacts. This floor is mandatory, not a
	// conditional.
	footprintFloor = 1e-5
)

// CoverageEvaluator computes the fill coverage of a sample point against a
// compiled glyph. Implementations are pure functions over the compilation's
// read-only curve buffer; one production implementation exists
// ([AnalyticEvaluator]) and alternative strategies plug in behind the same
// interface.
type CoverageEvaluator interface {
	// Coverage returns the fill coverage in [0, 1] for the sample position
	// p, expressed in the glyph's curve coordinate space. index selects the
	// glyph's range in the compilation's tables; negative sentinel indices
	// select diagnostic overlays. footprint is the per-axis screen-space
	// derivative of p (how far p moves per screen pixel in each axis).
	Coverage(comp *FontCompilation, index int32, p, footprint Point) float32
}

// AnalyticEvaluator is the production CoverageEvaluator: for every curve in
// the glyph's range it intersects the horizontal ray through the sample with
// the curve and accumulates signed, anti-aliased crossing contributions.
type AnalyticEvaluator struct {
	opts RenderOptions
}

// NewAnalyticEvaluator creates an evaluator with the given options.
func NewAnalyticEvaluator(opts RenderOptions) (*AnalyticEvaluator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &AnalyticEvaluator{opts: opts}, nil
}

// Options returns the evaluator's options.
func (e *AnalyticEvaluator) Options() RenderOptions {
	return e.opts
}

// Coverage implements CoverageEvaluator.
//
// Out-of-table indices return zero coverage rather than reading out of
// bounds; this boundary holds even though a correct quad emitter never
// produces such an index.
func (e *AnalyticEvaluator) Coverage(comp *FontCompilation, index int32, p, footprint Point) float32 {
	switch index {
	case OverlayGlyphBox:
		return overlayGlyphBoxCoverage
	case OverlayAdvanceBox:
		return overlayAdvanceBoxCoverage
	}

	rng, ok := comp.Range(index)
	if !ok || rng.Count == 0 {
		return 0
	}
	curves := comp.Curves()
	if int(rng.Start)+int(rng.Count) > len(curves) {
		return 0
	}
	curves = curves[rng.Start : rng.Start+rng.Count]

	fx := absf(footprint.X)
	if fx < footprintFloor {
		fx = footprintFloor
	}
	fy := absf(footprint.Y)
	if fy < footprintFloor {
		fy = footprintFloor
	}
	invX := 1 / (e.opts.AntiAliasingWindow * fx)
	invY := 1 / (e.opts.AntiAliasingWindow * fy)

	var alpha float32
	for _, cv := range curves {
		alpha += curveCoverage(invX, cv.P0.Sub(p), cv.P1.Sub(p), cv.P2.Sub(p))
	}

	if e.opts.SuperSampling {
		var rotated float32
		for _, cv := range curves {
			rotated += curveCoverage(invY,
				cv.P0.Sub(p).Rotate90(),
				cv.P1.Sub(p).Rotate90(),
				cv.P2.Sub(p).Rotate90())
		}
		alpha = (alpha + rotated) * 0.5
	}

	return clampf(alpha, 0, 1)
}

// curveCoverage computes one curve's signed coverage contribution for the
// horizontal ray from the origin toward +x. The points are the curve's
// control points relative to the sample position; inverseDiameter maps a
// curve-space x distance to the [0,1] anti-aliasing ramp.
func curveCoverage(inverseDiameter float32, p0, p1, p2 Point) float32 {
	// A curve entirely above or below the ray cannot cross it.
	if p0.Y > 0 && p1.Y > 0 && p2.Y > 0 {
		return 0
	}
	if p0.Y < 0 && p1.Y < 0 && p2.Y < 0 {
		return 0
	}

	// Coefficients of the simplified abc formula: the curve's y component
	// is a.y*t^2 - 2*b.y*t + c.y.
	a := p0.Sub(p1.Mul(2)).Add(p2)
	b := p0.Sub(p1)
	c := p0

	var t0, t1 float32
	if absf(a.Y) >= rootEpsilon {
		radicand := b.Y*b.Y - a.Y*c.Y
		if radicand <= 0 {
			return 0
		}
		s := float32(math.Sqrt(float64(radicand)))
		t0 = (b.Y - s) / a.Y
		t1 = (b.Y + s) / a.Y
	} else {
		// Near-linear segment. The single root goes to t1 when the curve
		// rises and to t0 when it falls, so the ray always exits at t0 and
		// enters at t1 with the same sign convention as the quadratic case.
		t := p0.Y / (p0.Y - p2.Y)
		if p0.Y < p2.Y {
			t0, t1 = -1, t
		} else {
			t0, t1 = t, -1
		}
	}

	// The strict upper bound avoids double-counting roots at segment
	// endpoints: the joint belongs to the next curve.
	var alpha float32
	if t0 >= 0 && t0 < 1 {
		x := (a.X*t0-2*b.X)*t0 + c.X
		alpha += clampf(x*inverseDiameter+0.5, 0, 1)
	}
	if t1 >= 0 && t1 < 1 {
		x := (a.X*t1-2*b.X)*t1 + c.X
		alpha -= clampf(x*inverseDiameter+0.5, 0, 1)
	}
	return alpha
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
