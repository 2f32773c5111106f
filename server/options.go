package server

import "log/slog"

import "golang.org/x/image/font/sfnt"

// Configuration option for [New]().
type Option func(*Server)

// Sets the accepted sizes and the size used for requests without a
// size or with an unsupported one. The default size must be one of
// the accepted sizes, and all sizes must be positive; otherwise this
// function will panic.
func WithSizes(defaultSize int, sizes ...int) Option {
	found := false
	for _, size := range sizes {
		if size <= 0 { panic("sizes must be positive") }
		if size == defaultSize { found = true }
	}
	if !found { panic("default size not among accepted sizes") }
	sizes = append([]int(nil), sizes...)
	return func(server *Server) {
		server.sizes = sizes
		server.defaultSize = defaultSize
	}
}

// Sets the font the cache renders with. It's only used for
// reporting, through the X-Missing-Glyphs response header and
// debug logs.
func WithFont(sfntFont *sfnt.Font, name string) Option {
	return func(server *Server) {
		server.font = sfntFont
		server.fontName = name
	}
}

// Sets the maximum number of runes per request. Values below 1 will panic.
func WithMaxRunes(maxRunes int) Option {
	if maxRunes < 1 { panic("maxRunes < 1") }
	return func(server *Server) { server.maxRunes = maxRunes }
}

// Sets the logger used by the server. If not set or nil, the
// dotmatrix package logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(server *Server) { server.logger = logger }
}
