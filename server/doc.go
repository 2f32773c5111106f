// The server subpackage exposes a glyph cache over HTTP: /font.csv
// returns bitmaps, /cache returns statistics and /clear resets the
// cache.
//
// Text is normalized to NFC before being split into characters, since
// multi-rune sequences (ligatures, combining marks without precomposed
// forms) are rasterized one rune at a time.
package server
