package cache

import "log/slog"

// Configuration option for [New]().
type Option func(*GlyphCache)

// Bounds the cache to approximately the given number of bytes. Zero
// means unbounded, which is the default. Negative values will panic.
//
// When bounded, the cache evicts cold entries (few bytes accessed per
// unit of time) to make room for new ones, sampling a few random
// entries instead of keeping a strict LRU order. New entries that
// can't find room are simply not stored, so a glyph may be rasterized
// more than once over the lifetime of a bounded cache.
func WithMaxBytes(maxByteSize int) Option {
	if maxByteSize < 0 { panic("maxByteSize < 0") } // likely a dev mistake
	return func(cache *GlyphCache) { cache.byteSizeLimit = maxByteSize }
}

// Sets the maximum number of distinct glyphs rasterized in parallel
// by a single [GlyphCache.GetBatch]() call. Values below 1 will panic.
// Defaults to GOMAXPROCS.
func WithBatchWorkers(workers int) Option {
	if workers < 1 { panic("workers < 1") }
	return func(cache *GlyphCache) { cache.batchWorkers = workers }
}

// Sets the logger used by the cache. If not set or nil, the
// dotmatrix package logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cache *GlyphCache) { cache.logger = logger }
}
