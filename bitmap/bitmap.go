package bitmap

import "strings"

// A packed 1-bit-per-pixel glyph bitmap for a square canvas of
// size x size pixels.
//
// Rows are stored top to bottom, each row padded to a whole number
// of bytes ([BytesPerRow]()), with the leftmost pixel of a row in the
// most significant bit of the row's first byte. The total length is
// always [Len](size). This is the exact layout expected by the CSV
// exporter and any downstream display driver, so it must never change.
type Bitmap []byte

// Returns the number of bytes used by each row of a bitmap of
// the given size.
func BytesPerRow(size int) int {
	return (size + 7) >> 3
}

// Returns the total length in bytes of a bitmap of the given size.
func Len(size int) int {
	return BytesPerRow(size) * size
}

// Creates a new all-zero bitmap for the given size.
func New(size int) Bitmap {
	return make(Bitmap, Len(size))
}

// Returns whether the pixel at (x, y) is set. Coordinates outside
// the size x size canvas are reported as unset.
func (self Bitmap) At(size, x, y int) bool {
	if x < 0 || y < 0 || x >= size || y >= size { return false }
	index := y*BytesPerRow(size) + (x >> 3)
	if index >= len(self) { return false }
	return self[index]&(0x80>>uint(x&7)) != 0
}

// Returns whether no pixel is set.
func (self Bitmap) IsZero() bool {
	for _, b := range self {
		if b != 0 { return false }
	}
	return true
}

// Returns a copy of the bitmap that can be freely modified.
func (self Bitmap) Clone() Bitmap {
	if self == nil { return nil }
	clone := make(Bitmap, len(self))
	copy(clone, self)
	return clone
}

// Returns whether both bitmaps hold exactly the same bytes.
func (self Bitmap) Equal(other Bitmap) bool {
	if len(self) != len(other) { return false }
	for i := range self {
		if self[i] != other[i] { return false }
	}
	return true
}

// Returns the number of set pixels.
func (self Bitmap) Count() int {
	count := 0
	for _, b := range self {
		for ; b != 0; b &= b - 1 {
			count += 1
		}
	}
	return count
}

// Renders the bitmap as text, one line per row, using '#' for set
// pixels and '.' for unset ones. Mostly useful for debugging and
// test failure messages.
func (self Bitmap) Render(size int) string {
	var builder strings.Builder
	builder.Grow((size + 1) * size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if self.At(size, x, y) {
				builder.WriteByte('#')
			} else {
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
