package glyphr

import "fmt"
import "sync"
import "image"
import "image/draw"

import "golang.org/x/image/font"
import "golang.org/x/image/font/basicfont"
import "golang.org/x/image/font/opentype"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/dotmatrix/mask"

var _ Renderer = (*FaceRenderer)(nil)

// A [Renderer] built on top of [font.Face] values. Faces are created
// lazily, one per size, and reused afterwards.
//
// Most faces can't be used concurrently, so calls are serialized.
// This renderer is mostly meant as a fallback; prefer [OutlineRenderer]
// for the main font.
type FaceRenderer struct {
	newFace func(size int) (font.Face, error)
	faces   map[int]font.Face
	mutex   sync.Mutex
}

// Creates a [FaceRenderer] that obtains its faces from the given
// function.
func NewFaceRenderer(newFace func(size int) (font.Face, error)) *FaceRenderer {
	return &FaceRenderer{
		newFace: newFace,
		faces:   make(map[int]font.Face, 4),
	}
}

// Creates a [FaceRenderer] that ignores the requested size and always
// draws with the 7x13 fixed face from [basicfont]. It can't fail for
// any rune in its ranges, which makes it a reasonable last resort when
// the main font doesn't cooperate.
func NewBasicRenderer() *FaceRenderer {
	return NewFaceRenderer(func(int) (font.Face, error) {
		return basicfont.Face7x13, nil
	})
}

// Creates a [FaceRenderer] that draws the given sfnt font through
// [opentype.NewFace], at 72 DPI so that points and pixels match.
func NewOpenTypeFaceRenderer(sfntFont *sfnt.Font) *FaceRenderer {
	return NewFaceRenderer(func(size int) (font.Face, error) {
		return opentype.NewFace(sfntFont, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingNone,
		})
	})
}

// Satisfies the [Renderer] interface.
func (self *FaceRenderer) MeasureAndRender(codePoint rune, size int) (*image.Alpha, image.Rectangle, error) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	face, err := self.faceFor(size)
	if err != nil { return nil, image.Rectangle{}, err }

	dot := fixed.Point26_6{X: 0, Y: face.Metrics().Ascent}
	dstRect, src, srcPoint, _, ok := face.Glyph(dot, codePoint)
	if !ok {
		return nil, image.Rectangle{}, fmt.Errorf("%w for %U", ErrMissingGlyph, codePoint)
	}
	if dstRect.Empty() || src == nil { return nil, image.Rectangle{}, nil }

	// the returned mask is usually shared by the face (a glyph atlas
	// or an internal buffer), so we need our own copy
	alphaMask := image.NewAlpha(dstRect)
	draw.Draw(alphaMask, dstRect, src, srcPoint, draw.Src)
	bounds := mask.ComputeRect(alphaMask, SolidThreshold)
	if bounds.Empty() { return nil, image.Rectangle{}, nil }
	return alphaMask, bounds, nil
}

// Closes all the faces created so far. The renderer remains usable.
func (self *FaceRenderer) Close() error {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	var firstErr error
	for size, face := range self.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(self.faces, size)
	}
	return firstErr
}

func (self *FaceRenderer) faceFor(size int) (font.Face, error) {
	face, found := self.faces[size]
	if found { return face, nil }
	face, err := self.newFace(size)
	if err != nil {
		return nil, fmt.Errorf("glyphr: creating face at size %d: %w", size, err)
	}
	self.faces[size] = face
	return face, nil
}
