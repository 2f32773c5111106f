package glyphr

import "fmt"
import "sync"
import "image"

import "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/dotmatrix/mask"

var _ Renderer = (*OutlineRenderer)(nil)

// A [Renderer] that loads glyph outlines directly from an sfnt font
// and rasterizes them with a [mask.Rasterizer].
//
// Neither sfnt buffers nor mask rasterizers can be used concurrently,
// so the renderer keeps a pool of them and each call takes its own.
type OutlineRenderer struct {
	font    *sfnt.Font
	workers sync.Pool
}

type outlineWorker struct {
	buffer     sfnt.Buffer
	rasterizer mask.Rasterizer
}

// Creates a new [OutlineRenderer] with a [mask.SharpRasterizer],
// which is what 1-bit output needs.
func NewStdOutlineRenderer(font *sfnt.Font) *OutlineRenderer {
	return NewOutlineRenderer(font, func() mask.Rasterizer { return &mask.SharpRasterizer{} })
}

// Creates a new [OutlineRenderer] for the given font. The newRasterizer
// function is called whenever the renderer needs one more rasterizer
// to serve concurrent calls.
func NewOutlineRenderer(font *sfnt.Font, newRasterizer func() mask.Rasterizer) *OutlineRenderer {
	renderer := &OutlineRenderer{font: font}
	renderer.workers.New = func() any {
		return &outlineWorker{rasterizer: newRasterizer()}
	}
	return renderer
}

// Returns the underlying font.
func (self *OutlineRenderer) Font() *sfnt.Font { return self.font }

// Satisfies the [Renderer] interface.
func (self *OutlineRenderer) MeasureAndRender(codePoint rune, size int) (*image.Alpha, image.Rectangle, error) {
	worker := self.workers.Get().(*outlineWorker)
	defer self.workers.Put(worker)

	index, err := self.font.GlyphIndex(&worker.buffer, codePoint)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("glyphr: glyph index for %U: %w", codePoint, err)
	}
	if index == 0 {
		return nil, image.Rectangle{}, fmt.Errorf("%w for %U", ErrMissingGlyph, codePoint)
	}

	ppem := fixed.I(size)
	metrics, err := self.font.Metrics(&worker.buffer, ppem, font.HintingNone)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("glyphr: metrics at size %d: %w", size, err)
	}
	segments, err := self.font.LoadGlyph(&worker.buffer, index, ppem, nil)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("glyphr: loading glyph %d for %U: %w", index, codePoint, err)
	}

	alphaMask, err := mask.Rasterize(segments, worker.rasterizer, fixed.Point26_6{})
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("glyphr: rasterizing %U: %w", codePoint, err)
	}
	if alphaMask == nil { return nil, image.Rectangle{}, nil }

	// outlines are relative to the baseline, move them to the line box
	alphaMask.Rect = alphaMask.Rect.Add(image.Pt(0, metrics.Ascent.Round()))
	return alphaMask, mask.ComputeRect(alphaMask, SolidThreshold), nil
}
