package cache

// A snapshot of the cache contents and counters.
type Stats struct {
	Partitions map[int]int // entry count per size
	Total int // entries across all sizes

	// Approximate memory used by the entries, now and at peak.
	ByteSize int
	PeakByteSize int

	// Counters since the cache was created. Not reset by clears.
	Hits uint64
	Misses uint64
	Evictions uint64
	Insertions uint64
}

// Returns a snapshot of the cache contents. No side effects.
func (self *GlyphCache) Stats() Stats {
	self.mutex.RLock()
	stats := Stats{
		Partitions: make(map[int]int, len(self.partitions)),
		Total: self.numEntries,
		ByteSize: self.byteSize,
		PeakByteSize: self.peakByteSize,
	}
	for size, partition := range self.partitions {
		stats.Partitions[size] = len(partition)
	}
	self.mutex.RUnlock()

	stats.Hits = self.hits.Load()
	stats.Misses = self.misses.Load()
	stats.Evictions = self.evictions.Load()
	stats.Insertions = self.insertions.Load()
	return stats
}
