package dotmatrix

import "fmt"
import "math"
import "image"
import "log/slog"

import "github.com/tinne26/dotmatrix/bitmap"
import "github.com/tinne26/dotmatrix/glyphr"

// The rasterization engine: turns a single rune into a centered,
// auto-scaled size x size [bitmap.Bitmap].
//
// An Engine has no mutable state after creation and is safe for
// concurrent use as long as its renderers are (which the
// [glyphr.Renderer] contract requires).
type Engine struct {
	renderer       glyphr.Renderer
	fallback       glyphr.Renderer
	logger         *slog.Logger
	scaleMargin    float64
	minRescaleSize int
}

// Creates a new engine drawing glyphs with the given renderer. By
// default the engine falls back to [glyphr.NewBasicRenderer]() when a
// glyph can't be re-rendered after being scaled down.
func NewEngine(renderer glyphr.Renderer, opts ...Option) *Engine {
	if renderer == nil { panic("nil renderer") } // likely a dev mistake
	engine := &Engine{
		renderer:       renderer,
		fallback:       glyphr.NewBasicRenderer(),
		scaleMargin:    DefaultScaleMargin,
		minRescaleSize: DefaultMinRescaleSize,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Rasterizes the given rune with a one-off engine using the given
// renderer and the default options.
func Rasterize(codePoint rune, size int, renderer glyphr.Renderer) bitmap.Bitmap {
	return NewEngine(renderer).Rasterize(codePoint, size)
}

// Rasterizes the given rune into a size x size bitmap.
//
// The method never fails: if the glyph can't be rendered, an all-zero
// bitmap of the right length is returned instead, so a single bad glyph
// can't break a batch. Glyphs that don't fit the canvas at the requested
// size are re-rendered at a smaller size. The result is centered on the
// canvas taking into account the glyph's own offset from the origin.
//
// Sizes must be positive; the method returns an empty bitmap otherwise.
func (self *Engine) Rasterize(codePoint rune, size int) bitmap.Bitmap {
	if size <= 0 { return bitmap.Bitmap{} }

	alphaMask, bounds, err := safeRender(self.renderer, codePoint, size)
	if err != nil {
		self.log().Debug("dotmatrix: render failed", "rune", string(codePoint), "size", size, "err", err)
		return bitmap.New(size)
	}

	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 { return bitmap.New(size) }

	if width > size || height > size {
		newSize := self.rescaledSize(size, width, height)
		alphaMask, bounds, err = safeRender(self.renderer, codePoint, newSize)
		if err != nil {
			self.log().Debug("dotmatrix: rescaled render failed, using fallback",
				"rune", string(codePoint), "size", size, "rescaled", newSize, "err", err)
			if self.fallback == nil { return bitmap.New(size) }
			alphaMask, bounds, err = safeRender(self.fallback, codePoint, newSize)
			if err != nil {
				self.log().Debug("dotmatrix: fallback render failed", "rune", string(codePoint), "err", err)
				return bitmap.New(size)
			}
		}
		width, height = bounds.Dx(), bounds.Dy()
		if width == 0 || height == 0 { return bitmap.New(size) }
	}

	// center the glyph and cancel the bounds offset from the origin
	offsetX := floorDiv(size - width, 2) - bounds.Min.X
	offsetY := floorDiv(size - height, 2) - bounds.Min.Y

	canvas := bitmap.NewCanvas(size)
	canvas.DrawAlpha(alphaMask, offsetX, offsetY, glyphr.SolidThreshold)
	return canvas.Pack()
}

// Returns the size at which a glyph of the given measured dimensions
// should be re-rendered to fit in a size x size canvas. The result is
// never above size nor below the minimum rescale size (unless size
// itself is smaller).
func (self *Engine) rescaledSize(size, width, height int) int {
	fsize := float64(size)
	scale := math.Min(fsize/float64(maxInt(width, 1)), fsize/float64(maxInt(height, 1)))
	newSize := int(math.Floor(fsize*scale*self.scaleMargin))
	if newSize < self.minRescaleSize { newSize = self.minRescaleSize }
	if newSize > size { newSize = size }
	return newSize
}

func (self *Engine) log() *slog.Logger {
	if self.logger != nil { return self.logger }
	return Logger()
}

// Renderers may be backed by code we don't control (font parsers),
// so panics are treated like any other render failure.
func safeRender(renderer glyphr.Renderer, codePoint rune, size int) (alphaMask *image.Alpha, bounds image.Rectangle, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			alphaMask, bounds = nil, image.Rectangle{}
			err = fmt.Errorf("dotmatrix: renderer panic: %v", recovered)
		}
	}()
	return renderer.MeasureAndRender(codePoint, size)
}

func floorDiv(a, b int) int {
	quotient := a / b
	if (a % b != 0) && ((a < 0) != (b < 0)) { quotient -= 1 }
	return quotient
}

func maxInt(a, b int) int {
	if a >= b { return a }
	return b
}
