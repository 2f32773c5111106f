package font

import "sync"
import "errors"

import "golang.org/x/image/font/sfnt"

var ErrNotFound = errors.New("font: property not found or empty")

// sfnt.Buffer values can't be used concurrently, and the properties
// can be queried from any number of request handlers at once.
var sfntBuffers = sync.Pool{
	New: func() any { return &sfnt.Buffer{} },
}

// Returns the requested font property for the given font.
// The returned property string might be empty even when error is nil.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(font *sfnt.Font, property sfnt.NameID) (string, error) {
	buffer := sfntBuffers.Get().(*sfnt.Buffer)
	str, err := font.Name(buffer, property)
	sfntBuffers.Put(buffer)
	if err == sfnt.ErrNotFound { return "", ErrNotFound }
	return str, err
}

// Returns the family name of the given font. If the information is
// missing, [ErrNotFound] will be returned. Other errors are also
// possible (e.g., if the font naming table is invalid).
func GetFamily(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFamily)
}

// Returns the name of the given font.
func GetName(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFull)
}

// Returns the distinct runes in the given text that the font has no
// glyph for, in order of first appearance. Those runes will be
// rasterized as blank bitmaps.
func MissingRunes(font *sfnt.Font, text string) ([]rune, error) {
	buffer := sfntBuffers.Get().(*sfnt.Buffer)
	defer sfntBuffers.Put(buffer)

	var missing []rune
	seen := make(map[rune]struct{})
	for _, codePoint := range text {
		if _, done := seen[codePoint]; done { continue }
		seen[codePoint] = struct{}{}
		index, err := font.GlyphIndex(buffer, codePoint)
		if err != nil { return missing, err }
		if index == 0 { missing = append(missing, codePoint) }
	}
	return missing, nil
}
