package vtext

import (
	"image"
)

// Rasterizer renders compiled glyphs into images on the CPU using a
// CoverageEvaluator. It evaluates exactly the algorithm the GPU fragment
// stage runs (see gpu/shaders/vtext.wgsl), which makes it both the fallback
// path and the reference implementation the tests exercise.
//
// Rasterizer is safe for concurrent use once the compilation is published.
type Rasterizer struct {
	eval CoverageEvaluator
}

// NewRasterizer creates a rasterizer backed by an AnalyticEvaluator with the
// given options.
func NewRasterizer(opts RenderOptions) (*Rasterizer, error) {
	eval, err := NewAnalyticEvaluator(opts)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{eval: eval}, nil
}

// NewRasterizerWithEvaluator creates a rasterizer with a custom coverage
// strategy.
func NewRasterizerWithEvaluator(eval CoverageEvaluator) *Rasterizer {
	return &Rasterizer{eval: eval}
}

// GlyphImage renders a single glyph at the given pixel size into an alpha
// image tightly enclosing its bounding box, with a one-pixel margin for the
// anti-aliasing ramp. Returns nil for glyphs without visible extent.
func (rz *Rasterizer) GlyphImage(comp *FontCompilation, r rune, pixelSize float64) *image.Alpha {
	m := comp.Glyph(r)
	if m.Width == 0 || m.Height == 0 {
		return nil
	}

	scale := float32(pixelSize) / float32(comp.UnitsPerEm())
	const margin = 1
	w := int(m.Width*scale) + 1 + 2*margin
	h := int(m.Height*scale) + 1 + 2*margin

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	// One curve-space unit step per pixel in each axis.
	footprint := Pt(1/scale, 1/scale)

	for iy := 0; iy < h; iy++ {
		// Image rows run top-down; curve space is y-up.
		v := m.BearingY - (float32(iy)+0.5-margin)/scale
		for ix := 0; ix < w; ix++ {
			u := m.BearingX + (float32(ix)+0.5-margin)/scale
			a := rz.eval.Coverage(comp, m.BufferIndex, Pt(u, v), footprint)
			img.Pix[iy*img.Stride+ix] = uint8(a*255 + 0.5)
		}
	}
	return img
}

// StringImage renders s into a w×h alpha image. origin is the baseline pen
// start in y-up pixel coordinates (y = 0 at the image bottom); the single
// y flip between curve space and image rows happens here, nowhere upstream.
func (rz *Rasterizer) StringImage(comp *FontCompilation, s string, origin Point, pixelSize float64, w, h int) *image.Alpha {
	scale := float32(pixelSize) / float32(comp.UnitsPerEm())
	verts, _ := EmitString(comp, s, origin, scale)

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	footprint := Pt(1/scale, 1/scale)

	for q := 0; q+VerticesPerQuad <= len(verts); q += VerticesPerQuad {
		rz.fillQuad(img, comp, verts[q:q+VerticesPerQuad], footprint)
	}
	return img
}

// fillQuad rasterizes one axis-aligned glyph quad into img, accumulating
// coverage with saturation where quads overlap.
func (rz *Rasterizer) fillQuad(img *image.Alpha, comp *FontCompilation, quad []Vertex, footprint Point) {
	// Quad layout per appendQuad: bl, br, tr, bl, tr, tl.
	bl, tr := quad[0], quad[2]
	x0, y0, x1, y1 := bl.X, bl.Y, tr.X, tr.Y
	if x1 <= x0 || y1 <= y0 {
		return
	}

	b := img.Bounds()
	height := float32(b.Dy())

	minX := int(x0)
	maxX := int(x1) + 1
	minY := int(height - y1)
	maxY := int(height-y0) + 1
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > b.Dx() {
		maxX = b.Dx()
	}
	if maxY > b.Dy() {
		maxY = b.Dy()
	}

	for iy := minY; iy < maxY; iy++ {
		py := height - (float32(iy) + 0.5)
		if py < y0 || py >= y1 {
			continue
		}
		v := bl.V + (py-y0)/(y1-y0)*(tr.V-bl.V)
		for ix := minX; ix < maxX; ix++ {
			px := float32(ix) + 0.5
			if px < x0 || px >= x1 {
				continue
			}
			u := bl.U + (px-x0)/(x1-x0)*(tr.U-bl.U)

			a := rz.eval.Coverage(comp, bl.Index, Pt(u, v), footprint)
			if a <= 0 {
				continue
			}
			idx := iy*img.Stride + ix
			sum := uint32(img.Pix[idx]) + uint32(a*255+0.5)
			if sum > 255 {
				sum = 255
			}
			img.Pix[idx] = uint8(sum)
		}
	}
}
