// Package dotmatrix turns Unicode text into fixed-size monochrome
// bitmap glyphs (dot-matrix fonts) for low resolution displays like LED
// matrices, e-paper panels or small embedded screens.
//
// The core of the package is the [Engine], which converts a single rune
// into a centered, auto-scaled, bit-packed size x size [bitmap.Bitmap]:
//
//	sfntFont, _, err := font.ParseDefault()
//	if err != nil { ... }
//	engine := dotmatrix.NewEngine(glyphr.NewStdOutlineRenderer(sfntFont))
//	glyph := engine.Rasterize('A', 16) // 32 bytes, 2 per row
//
// Glyphs are measured first, and if they don't fit the canvas they are
// re-rendered at a smaller size (with [DefaultScaleMargin] and never
// below [DefaultMinRescaleSize]). Glyphs that can't be rendered at all
// (e.g. runes missing from the font) become all-zero bitmaps instead of
// errors.
//
// Rasterization is CPU bound and deterministic, so results are meant to
// be memoized with the [cache.GlyphCache] from the cache subpackage,
// which also coalesces concurrent requests for the same glyph.
//
// Logging is disabled by default; see [SetLogger]().
//
// [bitmap.Bitmap]: https://pkg.go.dev/github.com/tinne26/dotmatrix/bitmap#Bitmap
// [cache.GlyphCache]: https://pkg.go.dev/github.com/tinne26/dotmatrix/cache#GlyphCache
package dotmatrix
