package export

import "io"
import "fmt"
import "errors"
import "strconv"
import "encoding/csv"

import "github.com/tinne26/dotmatrix/bitmap"

// Returned when the runes and bitmaps passed to [WriteCSV]() don't
// match, or a bitmap doesn't have the length its size requires.
var ErrLengthMismatch = errors.New("export: length mismatch")

// Returns the CSV header for bitmaps of the given size:
// "char", "byte0", "byte1", ..., one column per bitmap byte.
func Header(size int) []string {
	length := bitmap.Len(size)
	header := make([]string, 0, length + 1)
	header = append(header, "char")
	for i := 0; i < length; i++ {
		header = append(header, "byte" + strconv.Itoa(i))
	}
	return header
}

// Writes the given glyphs as CSV: a [Header]() row followed by one
// row per rune, in order, with the rune itself in the first column
// and the bitmap bytes as decimal values in the rest.
//
// The codePoints and glyphs slices must have the same length, and
// every glyph must be exactly [bitmap.Len](size) bytes long.
func WriteCSV(w io.Writer, size int, codePoints []rune, glyphs []bitmap.Bitmap) error {
	if len(codePoints) != len(glyphs) {
		return fmt.Errorf("%w: %d runes, %d bitmaps", ErrLengthMismatch, len(codePoints), len(glyphs))
	}
	length := bitmap.Len(size)
	writer := csv.NewWriter(w)
	if err := writer.Write(Header(size)); err != nil { return err }

	record := make([]string, length + 1)
	for i, codePoint := range codePoints {
		glyph := glyphs[i]
		if len(glyph) != length {
			return fmt.Errorf("%w: bitmap for %U has %d bytes, expected %d", ErrLengthMismatch, codePoint, len(glyph), length)
		}
		record[0] = string(codePoint)
		for k, value := range glyph {
			record[k + 1] = strconv.Itoa(int(value))
		}
		if err := writer.Write(record); err != nil { return err }
	}
	writer.Flush()
	return writer.Error()
}
