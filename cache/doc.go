// The cache subpackage provides the [GlyphCache], a concurrent-safe
// memoization layer in front of the dotmatrix rasterization engine.
//
// Rasterization is deterministic for a given font and size, so entries
// are never updated: they are inserted once and only removed by explicit
// clears (or by eviction, when the cache is bounded).
//
// The cache is unbounded by default. That's fine for the usual use-case
// of a few sizes and a few thousand distinct characters (a 32x32 glyph
// takes 128 bytes, plus some bookkeeping), but a public service can be
// fed arbitrary Unicode text, so consider [WithMaxBytes]() there. As a
// reference, the 20992 ideographs of the basic CJK unified block at sizes
// 16, 24 and 32 take around 9MiB.
package cache
