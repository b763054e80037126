package vtext

import "errors"

// Sentinel errors for the vtext package.
var (
	// ErrMalformedContour is returned when a contour's tag sequence violates
	// the outline model (e.g. an unpaired cubic control point).
	ErrMalformedContour = errors.New("vtext: malformed contour tag sequence")

	// ErrNilSource is returned when a FontCompilation is created without an
	// outline source.
	ErrNilSource = errors.New("vtext: outline source is nil")
)
