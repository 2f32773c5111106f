package main

import "os"
import "fmt"
import "flag"
import "time"
import "errors"
import "context"
import "strings"
import "strconv"
import "syscall"
import "log/slog"
import "net/http"
import "os/signal"

import "github.com/tinne26/dotmatrix"
import "github.com/tinne26/dotmatrix/cache"
import "github.com/tinne26/dotmatrix/font"
import "github.com/tinne26/dotmatrix/glyphr"
import "github.com/tinne26/dotmatrix/server"

// Serves dot-matrix glyph bitmaps over HTTP:
//
//	dotmatrixd -addr :5000 -font ./NotoSansSC-Regular.otf -max-bytes 67108864
//
// Without -font, the bundled Go Regular font is used.

func main() {
	addr := flag.String("addr", ":5000", "address to listen on")
	fontPath := flag.String("font", "", "path to a .ttf or .otf font (default: Go Regular)")
	maxBytes := flag.Int("max-bytes", 0, "glyph cache byte limit, 0 for unbounded")
	logLevel := flag.String("log-level", "info", "one of debug, info, warn, error")
	sizesList := flag.String("sizes", "16,24,32", "accepted sizes, the first being the default")
	maxRunes := flag.Int("max-runes", server.DefaultMaxRunes, "maximum runes per request")
	flag.Parse()

	err := run(*addr, *fontPath, *maxBytes, *logLevel, *sizesList, *maxRunes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dotmatrixd: %s\n", err)
		os.Exit(1)
	}
}

func run(addr, fontPath string, maxBytes int, logLevel, sizesList string, maxRunes int) error {
	// logging
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid -log-level %q", logLevel)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	dotmatrix.SetLogger(logger)

	// configuration checks
	sizes, err := parseSizes(sizesList)
	if err != nil { return err }
	if maxBytes < 0 { return errors.New("-max-bytes can't be negative") }
	if maxRunes < 1 { return errors.New("-max-runes must be at least 1") }

	// font, engine and cache
	sfntFont, fontName, err := font.Load(fontPath)
	if err != nil { return err }
	logger.Info("dotmatrix: font loaded", "name", fontName, "glyphs", sfntFont.NumGlyphs())

	fallback := glyphr.NewBasicRenderer()
	defer fallback.Close()
	engine := dotmatrix.NewEngine(glyphr.NewStdOutlineRenderer(sfntFont), dotmatrix.WithFallback(fallback))
	cacheOpts := []cache.Option{}
	if maxBytes > 0 { cacheOpts = append(cacheOpts, cache.WithMaxBytes(maxBytes)) }
	glyphCache := cache.New(engine, cacheOpts...)

	handler := server.New(glyphCache,
		server.WithSizes(sizes[0], sizes...),
		server.WithFont(sfntFont, fontName),
		server.WithMaxRunes(maxRunes),
	).Handler()

	// serve until interrupted
	httpServer := &http.Server{
		Addr: addr,
		Handler: handler,
		ReadHeaderTimeout: 10*time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("dotmatrix: server started", "addr", addr, "sizes", sizes)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("dotmatrix: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	if err != nil { return err }
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) { return err }
	return nil
}

// Parses a comma separated list of positive sizes.
func parseSizes(list string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" { continue }
		size, err := strconv.Atoi(field)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid size %q in -sizes", field)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 { return nil, errors.New("-sizes can't be empty") }
	return sizes, nil
}
