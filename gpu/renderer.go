package gpu

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/vtext"
)

//go:embed shaders/vtext.wgsl
var textShaderWGSL string

// TextRenderer owns the GPU resources for vector-texture text: the compiled
// shader module, bind group layouts, the glyph compute pipeline, and packed
// copies of the curve and range buffers. One renderer serves one device.
//
// Note: full GPU buffer binding requires HAL API extensions to expose buffer
// handles. Dispatch currently falls back to the CPU evaluator, which runs
// the same algorithm as the shader.
type TextRenderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	shaderModule       hal.ShaderModule
	sceneBindLayout    hal.BindGroupLayout
	dispatchBindLayout hal.BindGroupLayout
	pipelineLayout     hal.PipelineLayout
	glyphPipeline      hal.ComputePipeline

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	// Packed scene data, refreshed when the compilation generation moves.
	curves     []GPUCurve
	ranges     []GPUGlyphRange
	generation uint64
	uploaded   bool

	config GPUConfig
	eval   *vtext.AnalyticEvaluator

	initialized bool
	shaderReady bool
}

// NewTextRenderer creates a text renderer on the given device and queue.
func NewTextRenderer(device hal.Device, queue hal.Queue) (*TextRenderer, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: device and queue are required")
	}

	r := &TextRenderer{
		device: device,
		queue:  queue,
	}
	r.config = defaultConfig()
	eval, err := vtext.NewAnalyticEvaluator(vtext.DefaultRenderOptions())
	if err != nil {
		return nil, err
	}
	r.eval = eval

	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}

	return r, nil
}

func defaultConfig() GPUConfig {
	return GPUConfig{
		Projection:         Ortho(1, 1),
		Color:              [4]float32{0, 0, 0, 1},
		AntiAliasingWindow: vtext.DefaultRenderOptions().AntiAliasingWindow,
	}
}

// init initializes GPU resources (shader module, layouts, pipeline).
func (r *TextRenderer) init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(textShaderWGSL)
	if err != nil {
		return fmt.Errorf("gpu: failed to compile text shader: %w", err)
	}

	r.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range r.spirvCode {
		r.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	r.shaderReady = true

	shaderModule, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "vtext_shader",
		Source: hal.ShaderSource{
			SPIRV: r.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create shader module: %w", err)
	}
	r.shaderModule = shaderModule

	if err := r.createBindGroupLayouts(); err != nil {
		return err
	}

	if err := r.createPipelineLayout(); err != nil {
		return err
	}

	if err := r.createPipelines(); err != nil {
		return err
	}

	r.initialized = true
	return nil
}

// createBindGroupLayouts creates the scene and dispatch bind group layouts.
func (r *TextRenderer) createBindGroupLayouts() error {
	// Scene bind group (group 0): config uniform, curve buffer, range buffer.
	sceneLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vtext_scene_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 96, // sizeof(Config)
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create scene bind group layout: %w", err)
	}
	r.sceneBindLayout = sceneLayout

	// Dispatch bind group (group 1): dispatch uniform, coverage output.
	dispatchLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vtext_dispatch_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 32, // sizeof(Dispatch)
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create dispatch bind group layout: %w", err)
	}
	r.dispatchBindLayout = dispatchLayout

	return nil
}

// createPipelineLayout creates the pipeline layout.
func (r *TextRenderer) createPipelineLayout() error {
	layout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vtext_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.sceneBindLayout, r.dispatchBindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create pipeline layout: %w", err)
	}
	r.pipelineLayout = layout
	return nil
}

// createPipelines creates the glyph compute pipeline.
func (r *TextRenderer) createPipelines() error {
	glyphPipeline, err := r.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "vtext_glyph_pipeline",
		Layout: r.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     r.shaderModule,
			EntryPoint: "cs_glyph",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create glyph pipeline: %w", err)
	}
	r.glyphPipeline = glyphPipeline
	return nil
}

// Upload packs and stages the compilation's curve and range buffers.
// It is cheap to call every frame: buffers are only repacked when the
// compilation generation has moved since the previous upload.
// Returns true when new data was staged.
func (r *TextRenderer) Upload(comp *vtext.FontCompilation) (bool, error) {
	if comp == nil {
		return false, fmt.Errorf("gpu: nil compilation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return false, fmt.Errorf("gpu: renderer not initialized")
	}

	gen := comp.Generation()
	if r.uploaded && gen == r.generation {
		return false, nil
	}

	r.curves = PackCurves(comp.Curves())
	r.ranges = PackRanges(comp.Ranges())
	r.generation = gen
	r.uploaded = true

	vtext.Logger().Debug("staged curve buffers",
		"curves", len(r.curves),
		"glyphs", len(r.ranges),
		"generation", gen,
	)
	return true, nil
}

// SetConfig updates the per-frame render configuration.
func (r *TextRenderer) SetConfig(projection [16]float32, color [4]float32, opts vtext.RenderOptions) error {
	eval, err := vtext.NewAnalyticEvaluator(opts)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.config.Projection = projection
	r.config.Color = color
	r.config.AntiAliasingWindow = opts.AntiAliasingWindow
	if opts.SuperSampling {
		r.config.EnableSuperSampling = 1
	} else {
		r.config.EnableSuperSampling = 0
	}
	r.eval = eval
	return nil
}

// RasterizeGlyph evaluates one glyph's coverage over its bounding box at
// the given pixel size, with a one pixel margin on every side. The output
// is row-major, top-down, one byte per pixel.
//
// Note: dispatching cs_glyph requires buffer binding which needs HAL API
// extensions. Coverage is computed on the CPU with the same algorithm as
// the shader.
func (r *TextRenderer) RasterizeGlyph(comp *vtext.FontCompilation, ch rune, pixelSize float32) ([]uint8, int, int, error) {
	if comp == nil {
		return nil, 0, 0, fmt.Errorf("gpu: nil compilation")
	}
	if pixelSize <= 0 {
		return nil, 0, 0, fmt.Errorf("gpu: pixel size must be positive, got %v", pixelSize)
	}

	r.mu.Lock()
	eval := r.eval
	initialized := r.initialized
	r.mu.Unlock()

	if !initialized {
		return nil, 0, 0, fmt.Errorf("gpu: renderer not initialized")
	}

	m := comp.Glyph(ch)
	if m.Width == 0 || m.Height == 0 {
		// Whitespace and other empty glyphs produce no pixels.
		return nil, 0, 0, nil
	}
	scale := pixelSize / float32(comp.UnitsPerEm())

	const margin = 1
	w := int(math.Ceil(float64(m.Width*scale))) + 2*margin
	h := int(math.Ceil(float64(m.Height*scale))) + 2*margin

	dispatch := GPUDispatch{
		GlyphIndex: m.BufferIndex,
		//nolint:gosec // Dimensions derived from glyph metrics, always small
		Width: uint32(w),
		//nolint:gosec // Dimensions derived from glyph metrics, always small
		Height:  uint32(h),
		Scale:   scale,
		OriginU: m.BearingX + (0.5-margin)/scale,
		OriginV: m.BearingY - (0.5-margin)/scale,
	}

	coverage := r.computeCoverageCPU(comp, eval, dispatch)
	return coverage, w, h, nil
}

// computeCoverageCPU mirrors the cs_glyph compute shader. This serves as
// reference implementation and fallback.
func (r *TextRenderer) computeCoverageCPU(comp *vtext.FontCompilation, eval *vtext.AnalyticEvaluator, d GPUDispatch) []uint8 {
	coverage := make([]uint8, int(d.Width)*int(d.Height))
	invScale := 1.0 / d.Scale
	footprint := vtext.Pt(invScale, invScale)

	for iy := uint32(0); iy < d.Height; iy++ {
		// Rows run top-down in the output; curve space is y-up.
		v := d.OriginV - float32(iy)*invScale
		for ix := uint32(0); ix < d.Width; ix++ {
			u := d.OriginU + float32(ix)*invScale
			alpha := eval.Coverage(comp, d.GlyphIndex, vtext.Pt(u, v), footprint)
			coverage[iy*d.Width+ix] = uint8(alpha*255 + 0.5)
		}
	}

	return coverage
}

// IsInitialized returns whether GPU resources were created.
func (r *TextRenderer) IsInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// IsShaderReady returns whether the shader compiled successfully.
func (r *TextRenderer) IsShaderReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (r *TextRenderer) SPIRVCode() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spirvCode
}

// CurveCount returns the number of staged curves.
func (r *TextRenderer) CurveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.curves)
}

// Destroy releases all GPU resources.
func (r *TextRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device == nil {
		return
	}

	if r.glyphPipeline != nil {
		r.device.DestroyComputePipeline(r.glyphPipeline)
		r.glyphPipeline = nil
	}
	if r.pipelineLayout != nil {
		r.device.DestroyPipelineLayout(r.pipelineLayout)
		r.pipelineLayout = nil
	}
	if r.sceneBindLayout != nil {
		r.device.DestroyBindGroupLayout(r.sceneBindLayout)
		r.sceneBindLayout = nil
	}
	if r.dispatchBindLayout != nil {
		r.device.DestroyBindGroupLayout(r.dispatchBindLayout)
		r.dispatchBindLayout = nil
	}
	if r.shaderModule != nil {
		r.device.DestroyShaderModule(r.shaderModule)
		r.shaderModule = nil
	}

	r.initialized = false
}
