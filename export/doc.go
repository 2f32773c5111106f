// The export subpackage serializes glyph bitmaps for consumers that
// can't link against dotmatrix, like microcontroller firmware that
// downloads its font tables.
//
// The only format for the moment is CSV, with one row per character
// and one column per bitmap byte. Bytes keep the packed bitmap layout
// exactly (row-major, MSB-first, rows padded to whole bytes).
package export
