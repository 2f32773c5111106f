package glyphr

import "image"
import "errors"

// Alpha values at or above this threshold are considered set pixels.
// Everything below is background.
const SolidThreshold = 128

// Returned when the font has no glyph for the requested rune.
var ErrMissingGlyph = errors.New("glyphr: missing glyph")

// A Renderer is the glyph measurement and rendering primitive that
// the dotmatrix engine consumes.
//
// MeasureAndRender draws the given rune at the given pixel size and
// returns the resulting mask together with the tight bounds of its
// solid pixels (alpha >= [SolidThreshold]). Coordinates are relative
// to the top-left corner of the line box: x = 0 is the pen position
// and y = 0 is the ascender line, so the baseline sits at y = ascent.
// Glyphs with nothing to draw (e.g. spaces) return a nil mask and an
// empty rectangle without error.
//
// Renderers must be safe for concurrent use.
type Renderer interface {
	MeasureAndRender(codePoint rune, size int) (*image.Alpha, image.Rectangle, error)
}

// An adapter to allow the use of ordinary functions as renderers.
// The function must be safe for concurrent use.
type Func func(codePoint rune, size int) (*image.Alpha, image.Rectangle, error)

// Satisfies the [Renderer] interface.
func (self Func) MeasureAndRender(codePoint rune, size int) (*image.Alpha, image.Rectangle, error) {
	return self(codePoint, size)
}
