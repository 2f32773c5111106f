package cache

import "time"
import "sync/atomic"

import "github.com/tinne26/dotmatrix/bitmap"

// Approximate bookkeeping cost of an entry beyond its bitmap bytes
// (map slot, entry struct, slice header).
const constEntryOverhead = 64

// A cached glyph bitmap with additional information to estimate how
// much the entry is being used. Only relevant for bounded caches.
type cachedEntry struct {
	Glyph bitmap.Bitmap // Read-only.
	ByteSize uint32 // Read-only.
	CreationInstant uint32 // see cacheEntryInstant(). Read-only.
	accessCount uint32 // number of times the entry has been accessed
}

// Must be called after accessing an entry in order to keep the
// Hotness() heuristic making sense. Concurrent-safe.
func (self *cachedEntry) IncreaseAccessCount() {
	atomic.AddUint32(&self.accessCount, 1)
}

// A measure of "bytes accessed per time". Coldest entries
// (smallest values) are candidates for eviction. Concurrent-safe.
func (self *cachedEntry) Hotness(instant uint32) uint32 {
	const ConstEvictionCost = 1000 // additional threshold and pad
	bytesHit := self.ByteSize*atomic.LoadUint32(&self.accessCount)
	elapsed  := instant - self.CreationInstant
	if elapsed == 0 { elapsed = 1 }
	return (ConstEvictionCost + bytesHit)/elapsed
}

// Without this, testing eviction would need time.Sleep() calls.
// One second would be 1000_000_000, half a second 500_000_000, etc.
var testInstantNanosHack int64

var processEpoch = time.Now()

// A time instant related to the process monotonic clock, but with
// some arbitrary downscaling applied (roughly units of 134ms).
func cacheEntryInstant() uint32 {
	nanos := time.Since(processEpoch).Nanoseconds() + testInstantNanosHack
	return uint32(nanos >> 27)
}

// Creates a new cached entry for the given bitmap.
func newCachedEntry(glyph bitmap.Bitmap) (*cachedEntry, uint32) {
	instant := cacheEntryInstant()
	return &cachedEntry{
		Glyph: glyph,
		ByteSize: uint32(len(glyph)) + constEntryOverhead,
		CreationInstant: instant,
		accessCount: 1,
	}, instant
}
