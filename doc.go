// Package vtext renders vector (outline) fonts directly on the GPU using
// analytic per-pixel coverage, without pre-rasterizing glyphs into a bitmap
// atlas.
//
// # Overview
//
// vtext compiles font outlines into a flat buffer of quadratic Bezier curves
// plus a per-glyph index range into that buffer. At draw time, a pure
// coverage function evaluates, for each covered pixel, how much of that pixel
// lies inside the glyph's filled region. The curve buffer uploads to the GPU
// as a single read-only array; the same coverage function runs either in a
// fragment/compute stage (see the gpu subpackage) or on the CPU (see
// [Rasterizer]).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vtext"
//	    "github.com/gogpu/vtext/font"
//	)
//
//	src, _ := font.NewSFNTSource(ttfBytes)
//	comp, _ := vtext.NewFontCompilation(src)
//	_ = comp.CompileString("Hello, world!")
//
//	// CPU rendering:
//	r, _ := vtext.NewRasterizer(vtext.DefaultRenderOptions())
//	img := r.GlyphImage(comp, 'H', 64)
//
//	// GPU rendering: pack and upload via the gpu subpackage.
//
// # Architecture
//
// The library is organized into:
//   - Public API: FontCompilation, CoverageEvaluator, Rasterizer, EmitString
//   - font/: outline sources (x/image sfnt, go-text/typesetting)
//   - gpu/: wgpu buffer packing, shader compilation and dispatch
//   - cache/: sharded LRU used by the outline sources
//
// Compilation is single-producer: one goroutine appends glyphs, after which
// the compiled structures are read-only and safe for concurrent rasterization.
package vtext
