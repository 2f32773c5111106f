package dotmatrix

import "log/slog"

import "github.com/tinne26/dotmatrix/glyphr"

// The factor applied to the fit-to-canvas scale when a glyph has to be
// re-rendered at a smaller size. It leaves a small margin against the
// rounding differences between the first and second measurement.
const DefaultScaleMargin = 0.9

// The smallest size a glyph will be re-rendered at when scaled down.
// Below this, most glyphs become unreadable.
const DefaultMinRescaleSize = 8

// Configuration option for [NewEngine]().
type Option func(*Engine)

// Sets the scale margin (see [DefaultScaleMargin]). Values must be
// in (0, 1]; anything else will panic.
func WithScaleMargin(margin float64) Option {
	if margin <= 0 || margin > 1 { panic("scale margin must be in (0, 1]") }
	return func(engine *Engine) { engine.scaleMargin = margin }
}

// Sets the minimum rescale size (see [DefaultMinRescaleSize]).
// Values below 1 will panic.
func WithMinRescaleSize(size int) Option {
	if size < 1 { panic("min rescale size must be positive") }
	return func(engine *Engine) { engine.minRescaleSize = size }
}

// Sets the renderer used when a scaled-down glyph can't be rendered
// with the main renderer. A nil renderer disables the fallback, and
// such glyphs become blank bitmaps.
func WithFallback(renderer glyphr.Renderer) Option {
	return func(engine *Engine) { engine.fallback = renderer }
}

// Sets the logger used by the engine. If not set or nil, the package
// level [Logger]() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(engine *Engine) { engine.logger = logger }
}
