// Package font provides outline sources for vtext: components that, given a
// character code, yield the glyph's closed contours as tagged point streams
// plus its metrics, all in font design units.
//
// Two implementations exist behind the same [github.com/gogpu/vtext.OutlineSource]
// interface:
//   - [SFNTSource], backed by golang.org/x/image/font/sfnt
//   - [TypesettingSource], backed by github.com/go-text/typesetting
//
// Both cache extracted outlines per glyph ID in a sharded LRU, normalize the
// coordinate system to y-up font units, and mark contour orientation so the
// compiler can assume a single winding convention.
package font
