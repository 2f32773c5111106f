package mask

import "image"

// Returns the tightest rectangle containing every pixel of the mask
// with an alpha value at or above the given threshold. An empty
// rectangle is returned if no pixel qualifies.
func ComputeRect(mask *image.Alpha, threshold uint8) image.Rectangle {
	if mask == nil { return image.Rectangle{} }
	if threshold == 0 { threshold = 1 }

	minX, maxX := mask.Rect.Max.X, mask.Rect.Min.X - 1
	minY, maxY := mask.Rect.Max.Y, mask.Rect.Min.Y - 1
	empty := true
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		index := (y - mask.Rect.Min.Y)*mask.Stride
		activeValueInRow := false
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			if mask.Pix[index] >= threshold {
				activeValueInRow = true
				if x < minX { minX = x }
				if x > maxX { maxX = x }
			}
			index += 1
		}

		if activeValueInRow {
			empty = false
			if y < minY { minY = y }
			if y > maxY { maxY = y }
		}
	}

	if empty { return image.Rectangle{} }
	return image.Rect(minX, minY, maxX + 1, maxY + 1)
}
