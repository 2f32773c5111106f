package server

import "bytes"
import "errors"
import "strconv"
import "net/http"
import "log/slog"
import "encoding/json"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/text/unicode/norm"

import "github.com/tinne26/dotmatrix"
import "github.com/tinne26/dotmatrix/cache"
import "github.com/tinne26/dotmatrix/export"
import "github.com/tinne26/dotmatrix/font"

// Returned (as a JSON error message) when a request has no text.
var ErrEmptyText = errors.New("missing text parameter")

// Returned (as a JSON error message) when a request has more runes
// than allowed.
var ErrTextTooLong = errors.New("text parameter too long")

// The sizes accepted by default. Requests for any other size are
// served at [DefaultSize] instead.
var DefaultSizes = []int{16, 24, 32}

const DefaultSize = 16

// Maximum number of runes accepted per request by default.
const DefaultMaxRunes = 4096

// The HTTP front of a glyph cache. It normalizes requests (sizes,
// Unicode normalization) so the cache and engine never see invalid
// input.
type Server struct {
	cache *cache.GlyphCache
	font *sfnt.Font
	fontName string
	logger *slog.Logger
	sizes []int
	defaultSize int
	maxRunes int
}

// Creates a new server for the given cache.
func New(glyphCache *cache.GlyphCache, opts ...Option) *Server {
	if glyphCache == nil { panic("nil cache") } // likely a dev mistake
	server := &Server{
		cache: glyphCache,
		sizes: DefaultSizes,
		defaultSize: DefaultSize,
		maxRunes: DefaultMaxRunes,
	}
	for _, opt := range opts {
		opt(server)
	}
	return server
}

// Returns the HTTP handler with all the routes:
//   - GET /font.csv?text=...&size=...: glyph bitmaps as CSV.
//   - GET /glyph.txt?char=...&size=...: a single glyph drawn as text.
//   - GET /cache: cache statistics as JSON.
//   - POST /clear: clears the cache.
//   - GET /: service information as JSON.
func (self *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /font.csv", self.handleFontCSV)
	mux.HandleFunc("GET /glyph.txt", self.handleGlyphText)
	mux.HandleFunc("GET /cache", self.handleCacheStats)
	mux.HandleFunc("POST /clear", self.handleClear)
	mux.HandleFunc("GET /{$}", self.handleInfo)
	return mux
}

func (self *Server) handleFontCSV(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	codePoints, err := self.parseText(query.Get("text"))
	if err != nil {
		self.log().Warn("dotmatrix: rejected request", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	size := self.parseSize(query.Get("size"))

	glyphs := self.cache.GetBatch(size, codePoints)
	var body bytes.Buffer
	if err := export.WriteCSV(&body, size, codePoints, glyphs); err != nil {
		self.log().Error("dotmatrix: CSV export failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}

	if self.font != nil {
		missing, err := font.MissingRunes(self.font, string(codePoints))
		if err == nil {
			w.Header().Set("X-Missing-Glyphs", strconv.Itoa(len(missing)))
			if len(missing) > 0 {
				self.log().Debug("dotmatrix: runes missing from font", "runes", string(missing))
			}
		}
	}

	self.log().Info("dotmatrix: CSV served", "runes", len(codePoints), "size", size, "bytes", body.Len())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=font_" + strconv.Itoa(size) + ".csv")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

func (self *Server) handleGlyphText(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	codePoints, err := self.parseText(query.Get("char"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	size := self.parseSize(query.Get("size"))
	glyph := self.cache.Get(size, codePoints[0])
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(glyph.Render(size)))
}

// The JSON body for GET /cache. Keys of Sizes are the sizes as strings.
type cacheStatsResponse struct {
	Sizes map[string]int `json:"cache_sizes"`
	Total int `json:"total_chars"`
	Bytes int `json:"bytes"`
	PeakBytes int `json:"peak_bytes"`
	Hits uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

func (self *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := self.cache.Stats()
	response := cacheStatsResponse{
		Sizes: make(map[string]int, len(stats.Partitions)),
		Total: stats.Total,
		Bytes: stats.ByteSize,
		PeakBytes: stats.PeakByteSize,
		Hits: stats.Hits,
		Misses: stats.Misses,
		Evictions: stats.Evictions,
	}
	for size, count := range stats.Partitions {
		response.Sizes[strconv.Itoa(size)] = count
	}
	writeJSON(w, http.StatusOK, response)
}

func (self *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	self.cache.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
}

func (self *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name": "dotmatrix glyph bitmap service",
		"font": self.fontName,
		"sizes": self.sizes,
		"endpoints": map[string]string{
			"GET /font.csv?text=Hello&size=32": "glyph bitmaps as CSV",
			"GET /glyph.txt?char=A&size=16": "a single glyph as text",
			"GET /cache": "cache statistics",
			"POST /clear": "clear the cache",
		},
	})
}

// Normalizes the text to NFC (so combining sequences with a precomposed
// form become a single rune) and splits it into runes.
func (self *Server) parseText(text string) ([]rune, error) {
	if text == "" { return nil, ErrEmptyText }
	codePoints := []rune(norm.NFC.String(text))
	if len(codePoints) > self.maxRunes { return nil, ErrTextTooLong }
	return codePoints, nil
}

// Returns the requested size if supported, or the default size.
func (self *Server) parseSize(value string) int {
	if value == "" { return self.defaultSize }
	size, err := strconv.Atoi(value)
	if err == nil {
		for _, supported := range self.sizes {
			if size == supported { return size }
		}
	}
	self.log().Warn("dotmatrix: unsupported size, using default", "size", value, "default", self.defaultSize)
	return self.defaultSize
}

func (self *Server) log() *slog.Logger {
	if self.logger != nil { return self.logger }
	return dotmatrix.Logger()
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
