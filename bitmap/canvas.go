package bitmap

import "image"

// A square binary working canvas. Pixels drawn outside the canvas
// are silently dropped, which is what allows glyphs to be placed with
// negative or oversized offsets without any special handling.
type Canvas struct {
	size int
	pix  []bool
}

// Creates an empty size x size canvas.
func NewCanvas(size int) *Canvas {
	if size < 0 { size = 0 }
	return &Canvas{size: size, pix: make([]bool, size*size)}
}

// Returns the canvas side length.
func (self *Canvas) Size() int { return self.size }

// Sets or clears the pixel at (x, y). Out of bounds writes are ignored.
func (self *Canvas) Set(x, y int, value bool) {
	if x < 0 || y < 0 || x >= self.size || y >= self.size { return }
	self.pix[y*self.size+x] = value
}

// Returns whether the pixel at (x, y) is set. Out of bounds reads
// return false.
func (self *Canvas) At(x, y int) bool {
	if x < 0 || y < 0 || x >= self.size || y >= self.size { return false }
	return self.pix[y*self.size+x]
}

// Draws the given alpha mask with its own coordinates translated by
// (offsetX, offsetY). Mask pixels with an alpha value at or above
// threshold are set; everything else is left untouched.
func (self *Canvas) DrawAlpha(mask *image.Alpha, offsetX, offsetY int, threshold uint8) {
	if mask == nil { return }
	rect := mask.Rect
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := mask.Pix[(y-rect.Min.Y)*mask.Stride:]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if row[x-rect.Min.X] >= threshold {
				self.Set(x+offsetX, y+offsetY, true)
			}
		}
	}
}

// Packs the canvas into a [Bitmap] following the row-major,
// MSB-first layout. Columns past the canvas width in the last
// byte of each row are left as zero.
func (self *Canvas) Pack() Bitmap {
	size := self.size
	stride := BytesPerRow(size)
	packed := New(size)
	for y := 0; y < size; y++ {
		for xStart := 0; xStart < size; xStart += 8 {
			var value byte
			for bit := 0; bit < 8; bit++ {
				x := xStart + bit
				if x < size && self.pix[y*size+x] {
					value |= 1 << uint(7-bit)
				}
			}
			packed[y*stride+(xStart>>3)] = value
		}
	}
	return packed
}
