package vtext

// RenderOptions holds the coverage rasterizer's tunables.
type RenderOptions struct {
	// AntiAliasingWindow is the width of the smoothing ramp at glyph edges,
	// in pixels. 1.0 gives a ramp exactly one pixel wide centered on the
	// true edge. Smaller values sharpen, larger values blur.
	// Default: 1.0
	AntiAliasingWindow float32

	// SuperSampling enables a second coverage pass with all curve points
	// rotated 90 degrees, averaged with the first. Smoother diagonal edges
	// for twice the per-pixel work.
	// Default: false
	SuperSampling bool
}

// DefaultRenderOptions returns the default rasterizer options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		AntiAliasingWindow: 1.0,
		SuperSampling:      false,
	}
}

// Validate checks if the options are valid.
func (o *RenderOptions) Validate() error {
	if o.AntiAliasingWindow <= 0 {
		return &OptionError{Field: "AntiAliasingWindow", Reason: "must be positive"}
	}
	if o.AntiAliasingWindow > 16 {
		return &OptionError{Field: "AntiAliasingWindow", Reason: "must be at most 16"}
	}
	return nil
}

// OptionError represents an options validation error.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return "vtext: invalid RenderOptions." + e.Field + ": " + e.Reason
}
