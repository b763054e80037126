package gpu

import (
	"math"

	"github.com/gogpu/vtext"
)

// GPUCurve is the GPU-compatible layout of a quadratic curve.
// Must match the Curve struct in vtext.wgsl.
type GPUCurve struct {
	X0 float32 // Start point X
	Y0 float32 // Start point Y
	X1 float32 // Control point X
	Y1 float32 // Control point Y
	X2 float32 // End point X
	Y2 float32 // End point Y
}

// GPUGlyphRange addresses one glyph's slice of the curve buffer.
// Must match the Glyph struct in vtext.wgsl.
type GPUGlyphRange struct {
	Start uint32 // First curve index
	Count uint32 // Number of curves
}

// GPUConfig contains per-frame render configuration.
// Must match the Config struct in vtext.wgsl.
type GPUConfig struct {
	Projection          [16]float32 // Column-major projection matrix
	Color               [4]float32  // Text color, premultiplied by the shader
	AntiAliasingWindow  float32     // Width of the coverage ramp in pixels
	EnableSuperSampling uint32      // 0 or 1
	Padding1            uint32      // Padding for alignment
	Padding2            uint32      // Padding for alignment
}

// GPUVertex is the GPU-compatible layout of a text quad vertex.
// Must match VertexInput in vtext.wgsl.
type GPUVertex struct {
	X     float32 // Device position X
	Y     float32 // Device position Y
	U     float32 // Curve-space U
	V     float32 // Curve-space V
	Index int32   // Glyph index, negative for overlays
	Pad   uint32  // Padding for alignment
}

// GPUDispatch parameterizes a compute rasterization of a single glyph.
// Must match the Dispatch struct in vtext.wgsl.
type GPUDispatch struct {
	GlyphIndex int32   // Index into the glyph range buffer
	Width      uint32  // Output width in pixels
	Height     uint32  // Output height in pixels
	Scale      float32 // Pixels per font unit
	OriginU    float32 // Curve-space U of the top-left pixel center
	OriginV    float32 // Curve-space V of the top-left pixel center
	Padding1   uint32  // Padding for alignment
	Padding2   uint32  // Padding for alignment
}

// PackCurves converts a compilation's curve buffer to GPU format.
func PackCurves(curves []vtext.Curve) []GPUCurve {
	result := make([]GPUCurve, len(curves))
	for i, c := range curves {
		result[i] = GPUCurve{
			X0: c.P0.X, Y0: c.P0.Y,
			X1: c.P1.X, Y1: c.P1.Y,
			X2: c.P2.X, Y2: c.P2.Y,
		}
	}
	return result
}

// PackRanges converts a compilation's glyph ranges to GPU format.
func PackRanges(ranges []vtext.GlyphRange) []GPUGlyphRange {
	result := make([]GPUGlyphRange, len(ranges))
	for i, r := range ranges {
		result[i] = GPUGlyphRange{Start: r.Start, Count: r.Count}
	}
	return result
}

// PackVertices converts emitted quad vertices to GPU format.
func PackVertices(vertices []vtext.Vertex) []GPUVertex {
	result := make([]GPUVertex, len(vertices))
	for i, v := range vertices {
		result[i] = GPUVertex{X: v.X, Y: v.Y, U: v.U, V: v.V, Index: v.Index}
	}
	return result
}

// Ortho returns a column-major orthographic projection mapping the pixel
// rectangle [0,width]x[0,height] with a bottom-left origin onto normalized
// device coordinates. This is the single place the device coordinate
// convention is fixed; text positions stay y-up all the way to the shader.
func Ortho(width, height float32) [16]float32 {
	var m [16]float32
	m[0] = 2.0 / width
	m[5] = 2.0 / height
	m[10] = 1.0
	m[12] = -1.0
	m[13] = -1.0
	m[15] = 1.0
	return m
}

// Byte serialization for GPU buffer upload.

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeInt32(buf []byte, offset int, val int32) {
	//nolint:gosec // Intentional bit-cast for GPU buffer serialization
	writeUint32(buf, offset, uint32(val))
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}

// CurvesToBytes serializes curves for buffer upload. Stride is 24 bytes.
func CurvesToBytes(curves []GPUCurve) []byte {
	buf := make([]byte, len(curves)*24)
	for i, c := range curves {
		off := i * 24
		writeFloat32(buf, off+0, c.X0)
		writeFloat32(buf, off+4, c.Y0)
		writeFloat32(buf, off+8, c.X1)
		writeFloat32(buf, off+12, c.Y1)
		writeFloat32(buf, off+16, c.X2)
		writeFloat32(buf, off+20, c.Y2)
	}
	return buf
}

// RangesToBytes serializes glyph ranges for buffer upload. Stride is 8 bytes.
func RangesToBytes(ranges []GPUGlyphRange) []byte {
	buf := make([]byte, len(ranges)*8)
	for i, r := range ranges {
		off := i * 8
		writeUint32(buf, off+0, r.Start)
		writeUint32(buf, off+4, r.Count)
	}
	return buf
}

// VerticesToBytes serializes quad vertices for buffer upload. Stride is
// 24 bytes.
func VerticesToBytes(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*24)
	for i, v := range vertices {
		off := i * 24
		writeFloat32(buf, off+0, v.X)
		writeFloat32(buf, off+4, v.Y)
		writeFloat32(buf, off+8, v.U)
		writeFloat32(buf, off+12, v.V)
		writeInt32(buf, off+16, v.Index)
		writeUint32(buf, off+20, v.Pad)
	}
	return buf
}

// ConfigToBytes serializes the render configuration. Size is 96 bytes.
func ConfigToBytes(cfg GPUConfig) []byte {
	buf := make([]byte, 96)
	for i, f := range cfg.Projection {
		writeFloat32(buf, i*4, f)
	}
	for i, f := range cfg.Color {
		writeFloat32(buf, 64+i*4, f)
	}
	writeFloat32(buf, 80, cfg.AntiAliasingWindow)
	writeUint32(buf, 84, cfg.EnableSuperSampling)
	writeUint32(buf, 88, cfg.Padding1)
	writeUint32(buf, 92, cfg.Padding2)
	return buf
}
