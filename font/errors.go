package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrNoOutline is returned for glyphs without vector outline data
	// (bitmap or SVG color glyphs).
	ErrNoOutline = errors.New("font: glyph has no outline data")
)
