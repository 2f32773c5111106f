package main

import "os"
import "fmt"
import "flag"
import "log"

import "golang.org/x/text/unicode/norm"

import "github.com/tinne26/dotmatrix"
import "github.com/tinne26/dotmatrix/bitmap"
import "github.com/tinne26/dotmatrix/export"
import "github.com/tinne26/dotmatrix/font"
import "github.com/tinne26/dotmatrix/glyphr"
import "github.com/tinne26/dotmatrix/mask"

// Rasterizes text offline. Prints the glyphs to the terminal, or writes
// them as CSV with -csv:
//
//	dotmatrix -size 24 -font ./font.otf "Hello"
//	dotmatrix -size 16 -csv font_16.csv "0123456789"
//
// I mostly use this to check how a font looks at small sizes before
// loading it on the server.

func main() {
	fontPath := flag.String("font", "", "path to a .ttf or .otf font (default: Go Regular)")
	size := flag.Int("size", 16, "canvas size in pixels")
	csvPath := flag.String("csv", "", "write CSV to the given path instead of printing (- for stdout)")
	renderMode := flag.String("renderer", "sharp", "one of sharp, smooth, face")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: dotmatrix [flags] text\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 || *size <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	// parse font
	sfntFont, fontName, err := font.Load(*fontPath)
	if err != nil { log.Fatal(err) }
	family, err := font.GetFamily(sfntFont)
	if err != nil { family = "?" }
	fmt.Fprintf(os.Stderr, "Font loaded: %s (family %s)\n", fontName, family)

	// create renderer
	var renderer glyphr.Renderer
	switch *renderMode {
	case "sharp":
		renderer = glyphr.NewStdOutlineRenderer(sfntFont)
	case "smooth":
		renderer = glyphr.NewOutlineRenderer(sfntFont, func() mask.Rasterizer {
			return &mask.DefaultRasterizer{}
		})
	case "face":
		faceRenderer := glyphr.NewOpenTypeFaceRenderer(sfntFont)
		defer faceRenderer.Close()
		renderer = faceRenderer
	default:
		log.Fatalf("unknown renderer %q", *renderMode)
	}
	engine := dotmatrix.NewEngine(renderer)

	// rasterize
	text := norm.NFC.String(flag.Arg(0))
	missing, err := font.MissingRunes(sfntFont, text)
	if err != nil { log.Fatal(err) }
	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Runes missing from font: %q\n", string(missing))
	}
	codePoints := []rune(text)
	glyphs := make([]bitmap.Bitmap, len(codePoints))
	for i, codePoint := range codePoints {
		glyphs[i] = engine.Rasterize(codePoint, *size)
	}

	// output
	if *csvPath == "" {
		for i, codePoint := range codePoints {
			fmt.Printf("%q (%U):\n%s\n", codePoint, codePoint, glyphs[i].Render(*size))
		}
		return
	}
	err = writeCSV(*csvPath, *size, codePoints, glyphs)
	if err != nil { log.Fatal(err) }
}

func writeCSV(path string, size int, codePoints []rune, glyphs []bitmap.Bitmap) error {
	if path == "-" { return export.WriteCSV(os.Stdout, size, codePoints, glyphs) }
	file, err := os.Create(path)
	if err != nil { return err }
	err = export.WriteCSV(file, size, codePoints, glyphs)
	if err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
