package font

import (
	"github.com/gogpu/vtext"
)

// contourBuilder assembles tagged contour point streams from the
// MoveTo/LineTo/QuadTo/CubeTo segment form both font parsers produce.
// Coordinates pushed into the builder are y-up font design units.
type contourBuilder struct {
	contours []vtext.Contour
	current  []vtext.ContourPoint
}

func (b *contourBuilder) MoveTo(p vtext.Point) {
	b.closeCurrent()
	b.current = append(b.current, vtext.ContourPoint{Pos: p, Tag: vtext.TagOnCurve})
}

func (b *contourBuilder) LineTo(p vtext.Point) {
	b.current = append(b.current, vtext.ContourPoint{Pos: p, Tag: vtext.TagOnCurve})
}

func (b *contourBuilder) QuadTo(ctrl, p vtext.Point) {
	b.current = append(b.current,
		vtext.ContourPoint{Pos: ctrl, Tag: vtext.TagQuadControl},
		vtext.ContourPoint{Pos: p, Tag: vtext.TagOnCurve})
}

func (b *contourBuilder) CubeTo(ctrl1, ctrl2, p vtext.Point) {
	b.current = append(b.current,
		vtext.ContourPoint{Pos: ctrl1, Tag: vtext.TagCubicControl},
		vtext.ContourPoint{Pos: ctrl2, Tag: vtext.TagCubicControl},
		vtext.ContourPoint{Pos: p, Tag: vtext.TagOnCurve})
}

// closeCurrent finalizes the contour in progress. A trailing on-curve point
// that duplicates the starting point is dropped: the compiler closes every
// contour back to its first point itself, and the duplicate would emit an
// extra zero-length curve.
func (b *contourBuilder) closeCurrent() {
	pts := b.current
	if len(pts) == 0 {
		return
	}
	last := len(pts) - 1
	if last > 0 && pts[last].Tag == vtext.TagOnCurve && pts[last].Pos == pts[0].Pos {
		pts = pts[:last]
	}
	b.contours = append(b.contours, vtext.Contour{Points: pts})
	b.current = nil
}

// Finish closes the pending contour, marks winding orientation, and returns
// the contour set.
func (b *contourBuilder) Finish() []vtext.Contour {
	b.closeCurrent()
	markReversed(b.contours)
	return b.contours
}

// markReversed flags contour orientation for the compiler. The coverage
// rasterizer counts a sample as inside when the enclosing contour winds
// clockwise in y-up space; TrueType outlines already do, CFF outlines wind
// the other way. The dominant (largest-area) contour of a glyph is always an
// outer contour, so its sign decides the glyph's convention, and all
// contours flip together to keep holes opposite to their outers.
func markReversed(contours []vtext.Contour) {
	var dominant float32
	for _, c := range contours {
		if a := signedArea(c); absArea(a) > absArea(dominant) {
			dominant = a
		}
	}
	// Positive signed area means counter-clockwise in y-up space.
	if dominant > 0 {
		for i := range contours {
			contours[i].Reversed = true
		}
	}
}

// signedArea computes the shoelace area of the contour's point polygon.
// Control points perturb the magnitude but not the orientation sign.
func signedArea(c vtext.Contour) float32 {
	pts := c.Points
	n := len(pts)
	if n < 3 {
		return 0
	}
	var area float32
	for i := 0; i < n; i++ {
		area += pts[i].Pos.Cross(pts[(i+1)%n].Pos)
	}
	return area / 2
}

func absArea(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

// outlineMetrics computes the bounding-box metrics of a contour set.
// TrueType glyph boxes are point extremes, so the control points count.
func outlineMetrics(contours []vtext.Contour) (width, height, bearingX, bearingY float32) {
	found := false
	var minX, minY, maxX, maxY float32
	for _, c := range contours {
		for _, p := range c.Points {
			if !found {
				minX, maxX = p.Pos.X, p.Pos.X
				minY, maxY = p.Pos.Y, p.Pos.Y
				found = true
				continue
			}
			if p.Pos.X < minX {
				minX = p.Pos.X
			}
			if p.Pos.X > maxX {
				maxX = p.Pos.X
			}
			if p.Pos.Y < minY {
				minY = p.Pos.Y
			}
			if p.Pos.Y > maxY {
				maxY = p.Pos.Y
			}
		}
	}
	if !found {
		return 0, 0, 0, 0
	}
	return maxX - minX, maxY - minY, minX, maxY
}
