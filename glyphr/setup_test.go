package glyphr

// Test font setup shared by the renderer tests. Go Regular is
// bundled with golang.org/x/image, so no external asset is needed.

import "sync"
import "testing"

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/dotmatrix/font"

var testFont *sfnt.Font
var testFontOnce sync.Once

func ensureTestFont(t *testing.T) *sfnt.Font {
	t.Helper()
	var err error
	testFontOnce.Do(func() { testFont, _, err = font.ParseDefault() })
	if err != nil { t.Fatalf("TESTS INIT: %s", err) }
	if testFont == nil { t.Fatal("TESTS INIT: default font unavailable") }
	return testFont
}

func absInt(value int) int {
	if value < 0 { return -value }
	return value
}
