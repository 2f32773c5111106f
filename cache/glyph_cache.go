package cache

import "runtime"
import "strconv"
import "sync"
import "sync/atomic"
import "log/slog"

import "golang.org/x/sync/errgroup"
import "golang.org/x/sync/singleflight"

import "github.com/tinne26/dotmatrix"
import "github.com/tinne26/dotmatrix/bitmap"

// The computation the cache memoizes. [dotmatrix.Engine] is the
// standard implementation. Implementations must be deterministic and
// safe for concurrent use.
type Rasterizer interface {
	Rasterize(codePoint rune, size int) bitmap.Bitmap
}

// A concurrent-safe glyph bitmap cache, partitioned by size.
//
// Misses are rasterized outside of the cache lock, so a slow glyph
// never blocks lookups for unrelated keys, and concurrent misses on
// the same key share a single rasterization.
//
// Clears are atomic with respect to lookups: rasterizations that
// started before a clear still return their result to their callers,
// but are never stored after the clear.
type GlyphCache struct {
	rasterizer Rasterizer
	flights singleflight.Group

	mutex sync.RWMutex
	partitions map[int]map[rune]*cachedEntry
	generation uint64 // bumped on Clear()
	sizeGenerations map[int]uint64 // bumped on ClearSize()
	numEntries int
	byteSize int
	peakByteSize int

	byteSizeLimit int // zero if unbounded
	batchWorkers int
	logger *slog.Logger

	hits atomic.Uint64
	misses atomic.Uint64
	evictions atomic.Uint64
	insertions atomic.Uint64
}

// Creates a new, empty cache in front of the given rasterizer.
func New(rasterizer Rasterizer, opts ...Option) *GlyphCache {
	if rasterizer == nil { panic("nil rasterizer") } // likely a dev mistake
	cache := &GlyphCache{
		rasterizer: rasterizer,
		partitions: make(map[int]map[rune]*cachedEntry, 4),
		sizeGenerations: make(map[int]uint64, 4),
		batchWorkers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Returns the bitmap for the given rune and size, rasterizing and
// storing it first if necessary. Never fails: glyphs that can't be
// rendered are cached as blank bitmaps like any other.
//
// The returned bitmap is a copy and can be freely modified.
func (self *GlyphCache) Get(size int, codePoint rune) bitmap.Bitmap {
	return self.get(size, codePoint).Clone()
}

// Returns the bitmaps for the given runes, in the same order. Repeated
// runes get their own copies, but each distinct rune is resolved only
// once. Misses are rasterized in parallel (see [WithBatchWorkers]()).
func (self *GlyphCache) GetBatch(size int, codePoints []rune) []bitmap.Bitmap {
	positions := make(map[rune][]int, len(codePoints))
	distinct := make([]rune, 0, len(codePoints))
	for i, codePoint := range codePoints {
		if _, seen := positions[codePoint]; !seen {
			distinct = append(distinct, codePoint)
		}
		positions[codePoint] = append(positions[codePoint], i)
	}

	resolved := make([]bitmap.Bitmap, len(distinct))
	var group errgroup.Group
	group.SetLimit(self.batchWorkers)
	for i, codePoint := range distinct {
		i, codePoint := i, codePoint
		group.Go(func() error {
			resolved[i] = self.get(size, codePoint)
			return nil
		})
	}
	_ = group.Wait() // rasterization can't fail

	results := make([]bitmap.Bitmap, len(codePoints))
	for i, codePoint := range distinct {
		for _, position := range positions[codePoint] {
			results[position] = resolved[i].Clone()
		}
	}
	return results
}

// Removes all the entries in the cache.
func (self *GlyphCache) Clear() {
	self.mutex.Lock()
	removed := self.numEntries
	self.partitions = make(map[int]map[rune]*cachedEntry, 4)
	self.generation += 1
	self.numEntries = 0
	self.byteSize = 0
	self.mutex.Unlock()
	self.log().Info("dotmatrix: glyph cache cleared", "entries", removed)
}

// Removes all the entries for the given size. Other sizes are
// not affected.
func (self *GlyphCache) ClearSize(size int) {
	self.mutex.Lock()
	partition := self.partitions[size]
	for _, entry := range partition {
		self.byteSize -= int(entry.ByteSize)
	}
	self.numEntries -= len(partition)
	delete(self.partitions, size)
	self.sizeGenerations[size] += 1
	self.mutex.Unlock()
	self.log().Info("dotmatrix: glyph cache partition cleared", "size", size, "entries", len(partition))
}

// Returns the number of entries currently stored.
func (self *GlyphCache) Len() int {
	self.mutex.RLock()
	defer self.mutex.RUnlock()
	return self.numEntries
}

// ---- internals ----

func (self *GlyphCache) get(size int, codePoint rune) bitmap.Bitmap {
	glyph, found := self.lookup(size, codePoint)
	if found {
		self.hits.Add(1)
		return glyph
	}
	self.misses.Add(1)
	return self.resolve(size, codePoint)
}

func (self *GlyphCache) lookup(size int, codePoint rune) (bitmap.Bitmap, bool) {
	self.mutex.RLock()
	entry, found := self.partitions[size][codePoint]
	self.mutex.RUnlock()
	if !found { return nil, false }
	entry.IncreaseAccessCount()
	return entry.Glyph, true
}

// Rasterizes and stores the glyph, coalescing concurrent calls for
// the same key and generation.
func (self *GlyphCache) resolve(size int, codePoint rune) bitmap.Bitmap {
	self.mutex.RLock()
	generation, sizeGeneration := self.generation, self.sizeGenerations[size]
	self.mutex.RUnlock()

	key := flightKey(generation, sizeGeneration, size, codePoint)
	value, _, _ := self.flights.Do(key, func() (any, error) {
		// a previous flight for the same key may have finished
		// between our lookup and joining this one
		glyph, found := self.lookup(size, codePoint)
		if found { return glyph, nil }
		glyph = self.rasterizer.Rasterize(codePoint, size)
		self.store(generation, sizeGeneration, size, codePoint, glyph)
		return glyph, nil
	})
	return value.(bitmap.Bitmap)
}

// Stores the glyph unless the cache has been cleared since the given
// generations were read, or the glyph doesn't find room in a bounded
// cache.
func (self *GlyphCache) store(generation, sizeGeneration uint64, size int, codePoint rune, glyph bitmap.Bitmap) {
	entry, instant := newCachedEntry(glyph)

	self.mutex.Lock()
	defer self.mutex.Unlock()
	if generation != self.generation || sizeGeneration != self.sizeGenerations[size] { return }
	if _, exists := self.partitions[size][codePoint]; exists { return }
	if self.byteSizeLimit > 0 && !self.makeRoom(entry, instant) { return }

	// evictions may have removed the partition, so look it up again
	partition, found := self.partitions[size]
	if !found {
		partition = make(map[rune]*cachedEntry, 64)
		self.partitions[size] = partition
	}
	partition[codePoint] = entry
	self.numEntries += 1
	self.byteSize += int(entry.ByteSize)
	if self.byteSize > self.peakByteSize { self.peakByteSize = self.byteSize }
	self.insertions.Add(1)
}

// Evicts entries colder than the given one until it fits. Returns
// false if it can't make enough room. Must be called with the write
// lock held.
func (self *GlyphCache) makeRoom(entry *cachedEntry, instant uint32) bool {
	const MaxMakeRoomAttempts = 2

	size := int(entry.ByteSize)
	if size > self.byteSizeLimit { return false }
	hotness := entry.Hotness(instant)
	for i := 0; i < MaxMakeRoomAttempts; i++ {
		if self.byteSize + size <= self.byteSizeLimit { return true }
		if !self.removeColdEntry(hotness, instant) { return false }
	}
	return self.byteSize + size <= self.byteSizeLimit
}

// Removes the entry with the lowest hotness from a small pool of
// samples, if colder than the given hotness. Map iteration order is
// what makes the sampling random. Must be called with the write lock
// held.
func (self *GlyphCache) removeColdEntry(hotness uint32, instant uint32) bool {
	const SampleSize = 10

	var selectedSize int
	var selectedRune rune
	lowestHotness := ^uint32(0)
	samplesTaken := 0
sampling:
	for size, partition := range self.partitions {
		for codePoint, entry := range partition {
			currHotness := entry.Hotness(instant)
			if currHotness < lowestHotness {
				lowestHotness = currHotness
				selectedSize, selectedRune = size, codePoint
			}
			samplesTaken += 1
			if samplesTaken >= SampleSize { break sampling }
		}
	}
	if samplesTaken == 0 || lowestHotness >= hotness { return false }

	partition := self.partitions[selectedSize]
	entry := partition[selectedRune]
	delete(partition, selectedRune)
	if len(partition) == 0 { delete(self.partitions, selectedSize) }
	self.numEntries -= 1
	self.byteSize -= int(entry.ByteSize)
	self.evictions.Add(1)
	return true
}

func (self *GlyphCache) log() *slog.Logger {
	if self.logger != nil { return self.logger }
	return dotmatrix.Logger()
}

func flightKey(generation, sizeGeneration uint64, size int, codePoint rune) string {
	buffer := make([]byte, 0, 48)
	buffer = strconv.AppendUint(buffer, generation, 36)
	buffer = append(buffer, ':')
	buffer = strconv.AppendUint(buffer, sizeGeneration, 36)
	buffer = append(buffer, ':')
	buffer = strconv.AppendInt(buffer, int64(size), 10)
	buffer = append(buffer, ':')
	buffer = strconv.AppendInt(buffer, int64(codePoint), 16)
	return string(buffer)
}
