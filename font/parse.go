package font

import "os"
import "io"
import "io/fs"
import "errors"
import "fmt"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/goregular"

// Returned by the path-based parsing functions when the given
// path doesn't end in .ttf or .otf.
var ErrInvalidPath = errors.New("font: invalid font path")

// Similar to [sfnt.Parse](), but also including the font name
// in the returned values. The bytes must not be modified while
// the font is in use.
//
// [sfnt.Parse]: https://pkg.go.dev/golang.org/x/image/font/sfnt#Parse.
func ParseFromBytes(fontBytes []byte) (*sfnt.Font, string, error) {
	newFont, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, "", err
	}
	fontName, err := GetName(newFont)
	return newFont, fontName, err
}

// Attempts to parse a font located the given filepath and returns it
// along its name and any possible error. Supported formats are .ttf
// and .otf.
func ParseFromPath(path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) {
		return nil, "", fmt.Errorf("%w '%s'", ErrInvalidPath, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return parseFontFileAndClose(file)
}

// Same as [ParseFromPath](), but for embedded filesystems.
func ParseFromFS(filesys fs.FS, path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) {
		return nil, "", fmt.Errorf("%w '%s'", ErrInvalidPath, path)
	}

	file, err := filesys.Open(path)
	if err != nil {
		return nil, "", err
	}
	return parseFontFileAndClose(file)
}

// Parses the Go Regular font bundled with golang.org/x/image. It's
// the font used when no font file is configured, and it only covers
// Latin, Greek and Cyrillic scripts: anything else renders blank.
func ParseDefault() (*sfnt.Font, string, error) {
	return ParseFromBytes(goregular.TTF)
}

// Parses the font at the given path, or the default font if the
// path is empty.
func Load(path string) (*sfnt.Font, string, error) {
	if path == "" { return ParseDefault() }
	return ParseFromPath(path)
}

// ---- helpers ----

func parseFontFileAndClose(file io.ReadCloser) (*sfnt.Font, string, error) {
	fontBytes, err := io.ReadAll(file)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	err = file.Close()
	if err != nil {
		return nil, "", err
	}
	return ParseFromBytes(fontBytes)
}

// Whether font path ends in .ttf or .otf.
func hasValidFontExtension(path string) bool {
	if len(path) < 4 { return false }
	if path[len(path)-1] != 'f' { return false }
	if path[len(path)-2] != 't' { return false }
	thrd := path[len(path)-3]
	if thrd != 't' && thrd != 'o' { return false }
	return path[len(path)-4] == '.'
}
