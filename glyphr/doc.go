// The glyphr subpackage defines the [Renderer] interface, the glyph
// measurement and rendering primitive that the dotmatrix engine is
// built on, and provides a few implementations:
//   - [OutlineRenderer]: loads outlines from an sfnt font and rasterizes
//     them with a [mask.Rasterizer]. This is the standard choice.
//   - [FaceRenderer]: draws through any [font.Face]. [NewBasicRenderer]
//     uses the fixed 7x13 face, which is what the engine falls back to
//     when a glyph can't be re-rendered at a smaller size.
//   - [Func]: adapts plain functions, handy for tests.
//
// [mask.Rasterizer]: https://pkg.go.dev/github.com/tinne26/dotmatrix/mask#Rasterizer
// [font.Face]: https://pkg.go.dev/golang.org/x/image/font#Face
package glyphr
