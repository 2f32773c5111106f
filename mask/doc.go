// The mask subpackage defines the [Rasterizer] interface used by the
// glyph renderers and provides the two implementations dotmatrix needs.
//
// In this context, "[Rasterizer]" refers to a "glyph mask rasterizer":
// font glyphs are extracted from font files as outlines (sets of lines
// and curves), and have to be drawn into a raster image (a grid of
// pixels) before anything else can be done with them. [DefaultRasterizer]
// produces anti-aliased masks, while [SharpRasterizer] quantizes them to
// fully opaque or fully transparent pixels, which is what a 1-bit
// dot-matrix bitmap ultimately needs.
//
// [ComputeRect] finds the tight bounds of the solid pixels of a mask,
// which is the measurement that glyph centering depends on.
package mask
