// Package gpu uploads compiled glyph curve data to the GPU and evaluates
// coverage with the vector-texture shader.
//
// The package mirrors the structure of the shader in shaders/vtext.wgsl:
// GPUCurve, GPUGlyphRange, GPUConfig and GPUVertex are the packed layouts
// of the corresponding WGSL structs, and the TextRenderer owns the compiled
// shader module, bind group layouts and compute pipeline. Rendering via the
// vertex and fragment entry points is driven by the embedding application;
// this package provides the same coverage evaluation through a compute
// dispatch and a CPU mirror for environments without a device.
package gpu
