package server

import "io"
import "strings"
import "testing"
import "net/http"
import "net/http/httptest"
import "net/url"
import "encoding/csv"
import "encoding/json"
import "sync/atomic"

import "github.com/tinne26/dotmatrix"
import "github.com/tinne26/dotmatrix/bitmap"
import "github.com/tinne26/dotmatrix/cache"
import "github.com/tinne26/dotmatrix/font"
import "github.com/tinne26/dotmatrix/glyphr"

// Produces bitmaps with the rune's low byte in the first position.
type fakeRasterizer struct {
	calls atomic.Int64
}

func (self *fakeRasterizer) Rasterize(codePoint rune, size int) bitmap.Bitmap {
	self.calls.Add(1)
	glyph := bitmap.New(size)
	glyph[0] = byte(codePoint)
	return glyph
}

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *fakeRasterizer, *cache.GlyphCache) {
	t.Helper()
	rasterizer := &fakeRasterizer{}
	glyphCache := cache.New(rasterizer)
	server := httptest.NewServer(New(glyphCache, opts...).Handler())
	t.Cleanup(server.Close)
	return server, rasterizer, glyphCache
}

func get(t *testing.T, server *httptest.Server, path string, params url.Values) *http.Response {
	t.Helper()
	target := server.URL + path
	if params != nil { target += "?" + params.Encode() }
	response, err := http.Get(target)
	if err != nil { t.Fatalf("GET %s: %s", path, err) }
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func readCSV(t *testing.T, response *http.Response) [][]string {
	t.Helper()
	records, err := csv.NewReader(response.Body).ReadAll()
	if err != nil { t.Fatalf("invalid CSV: %s", err) }
	return records
}

func TestFontCSV(t *testing.T) {
	server, _, _ := newTestServer(t)
	response := get(t, server, "/font.csv", url.Values{"text": {"Hi"}, "size": {"24"}})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if got := response.Header.Get("Content-Disposition"); got != "attachment; filename=font_24.csv" {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if got := response.Header.Get("Cache-Control"); got != "no-cache" {
		t.Fatalf("unexpected Cache-Control %q", got)
	}
	if !strings.HasPrefix(response.Header.Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected Content-Type %q", response.Header.Get("Content-Type"))
	}

	records := readCSV(t, response)
	if len(records) != 3 { t.Fatalf("expected 3 records, got %d", len(records)) }
	if len(records[0]) != 73 || records[0][0] != "char" || records[0][72] != "byte71" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][0] != "H" || records[1][1] != "72" {
		t.Fatalf("unexpected first row %v", records[1][:2])
	}
	if records[2][0] != "i" || records[2][1] != "105" {
		t.Fatalf("unexpected second row %v", records[2][:2])
	}
}

func TestFontCSVSizeNormalization(t *testing.T) {
	server, _, _ := newTestServer(t)
	tests := []struct {
		size string
		expected string
		columns int
	}{
		{"", "16", 33},
		{"16", "16", 33},
		{"32", "32", 129},
		{"20", "16", 33},
		{"abc", "16", 33},
		{"-8", "16", 33},
	}
	for _, test := range tests {
		params := url.Values{"text": {"A"}}
		if test.size != "" { params.Set("size", test.size) }
		response := get(t, server, "/font.csv", params)
		expectedDisposition := "attachment; filename=font_" + test.expected + ".csv"
		if got := response.Header.Get("Content-Disposition"); got != expectedDisposition {
			t.Fatalf("size %q: expected %q, got %q", test.size, expectedDisposition, got)
		}
		records := readCSV(t, response)
		if len(records[0]) != test.columns {
			t.Fatalf("size %q: expected %d columns, got %d", test.size, test.columns, len(records[0]))
		}
	}
}

func TestFontCSVEmptyText(t *testing.T) {
	server, rasterizer, _ := newTestServer(t)
	for _, params := range []url.Values{nil, {"text": {""}}, {"size": {"16"}}} {
		response := get(t, server, "/font.csv", params)
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", response.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
			t.Fatalf("invalid JSON error body: %s", err)
		}
		if body["error"] != ErrEmptyText.Error() {
			t.Fatalf("unexpected error message %q", body["error"])
		}
	}
	if rasterizer.calls.Load() != 0 {
		t.Fatal("rejected requests must not rasterize anything")
	}
}

func TestFontCSVTooLong(t *testing.T) {
	server, _, _ := newTestServer(t, WithMaxRunes(3))
	response := get(t, server, "/font.csv", url.Values{"text": {"abcd"}})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	response = get(t, server, "/font.csv", url.Values{"text": {"abc"}})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

func TestFontCSVNormalizesNFC(t *testing.T) {
	server, _, glyphCache := newTestServer(t)
	// 'e' + combining acute accent composes into U+00E9
	response := get(t, server, "/font.csv", url.Values{"text": {"e\u0301"}})
	records := readCSV(t, response)
	if len(records) != 2 { t.Fatalf("expected a single glyph row, got %d rows", len(records) - 1) }
	if records[1][0] != "\u00e9" { t.Fatalf("expected precomposed rune, got %q", records[1][0]) }
	if glyphCache.Len() != 1 { t.Fatalf("expected 1 cached glyph, got %d", glyphCache.Len()) }
}

func TestFontCSVRepeatedRunes(t *testing.T) {
	server, rasterizer, _ := newTestServer(t)
	response := get(t, server, "/font.csv", url.Values{"text": {"aaaa"}})
	records := readCSV(t, response)
	if len(records) != 5 { t.Fatalf("expected 4 glyph rows, got %d", len(records) - 1) }
	if rasterizer.calls.Load() != 1 {
		t.Fatalf("expected a single rasterization, got %d", rasterizer.calls.Load())
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	server, rasterizer, _ := newTestServer(t)
	get(t, server, "/font.csv", url.Values{"text": {"abc"}, "size": {"16"}})
	get(t, server, "/font.csv", url.Values{"text": {"ab"}, "size": {"32"}})
	get(t, server, "/font.csv", url.Values{"text": {"a"}, "size": {"32"}})

	var stats struct {
		Sizes map[string]int `json:"cache_sizes"`
		Total int `json:"total_chars"`
		Hits uint64 `json:"hits"`
		Misses uint64 `json:"misses"`
	}
	response := get(t, server, "/cache", nil)
	if err := json.NewDecoder(response.Body).Decode(&stats); err != nil {
		t.Fatalf("invalid JSON: %s", err)
	}
	if stats.Sizes["16"] != 3 || stats.Sizes["32"] != 2 || len(stats.Sizes) != 2 {
		t.Fatalf("unexpected cache sizes %v", stats.Sizes)
	}
	if stats.Total != 5 { t.Fatalf("expected 5 total chars, got %d", stats.Total) }
	if stats.Misses != 5 || stats.Hits != 1 {
		t.Fatalf("expected 5 misses and 1 hit, got %d and %d", stats.Misses, stats.Hits)
	}

	clearResponse, err := http.Post(server.URL + "/clear", "", nil)
	if err != nil { t.Fatalf("POST /clear: %s", err) }
	defer clearResponse.Body.Close()
	if clearResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", clearResponse.StatusCode)
	}

	stats.Sizes = nil
	response = get(t, server, "/cache", nil)
	if err := json.NewDecoder(response.Body).Decode(&stats); err != nil {
		t.Fatalf("invalid JSON: %s", err)
	}
	if stats.Total != 0 || len(stats.Sizes) != 0 {
		t.Fatalf("expected empty cache after clear, got %d chars in %v", stats.Total, stats.Sizes)
	}

	before := rasterizer.calls.Load()
	get(t, server, "/font.csv", url.Values{"text": {"a"}, "size": {"32"}})
	if rasterizer.calls.Load() != before + 1 {
		t.Fatal("expected cleared glyph to be rasterized again")
	}
}

func TestMethodsAndRoutes(t *testing.T) {
	server, _, _ := newTestServer(t)
	response := get(t, server, "/clear", nil)
	if response.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected GET /clear to be rejected with 405, got %d", response.StatusCode)
	}
	response = get(t, server, "/missing", nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	response = get(t, server, "/", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	var info map[string]any
	if err := json.NewDecoder(response.Body).Decode(&info); err != nil {
		t.Fatalf("invalid JSON: %s", err)
	}
	if _, found := info["endpoints"]; !found { t.Fatal("expected endpoints in info") }
}

func TestWithSizes(t *testing.T) {
	server, _, _ := newTestServer(t, WithSizes(8, 8, 12))
	response := get(t, server, "/font.csv", url.Values{"text": {"x"}, "size": {"16"}})
	if got := response.Header.Get("Content-Disposition"); got != "attachment; filename=font_8.csv" {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	response = get(t, server, "/font.csv", url.Values{"text": {"x"}, "size": {"12"}})
	records := readCSV(t, response)
	if len(records[0]) != 1 + bitmap.Len(12) {
		t.Fatalf("expected %d columns, got %d", 1 + bitmap.Len(12), len(records[0]))
	}
}

func TestOptionPanics(t *testing.T) {
	tests := []func(){
		func() { WithSizes(16, 24, 32) },
		func() { WithSizes(16, 16, 0) },
		func() { WithMaxRunes(0) },
		func() { New(nil) },
	}
	for i, test := range tests {
		func() {
			defer func() {
				if recover() == nil { t.Fatalf("test #%d: expected panic", i) }
			}()
			test()
		}()
	}
}

func TestRealFont(t *testing.T) {
	sfntFont, name, err := font.ParseDefault()
	if err != nil { t.Fatalf("TESTS INIT: %s", err) }
	engine := dotmatrix.NewEngine(glyphr.NewStdOutlineRenderer(sfntFont))
	handler := New(cache.New(engine), WithFont(sfntFont, name)).Handler()
	server := httptest.NewServer(handler)
	defer server.Close()

	response := get(t, server, "/font.csv", url.Values{"text": {"A一 "}, "size": {"16"}})
	if got := response.Header.Get("X-Missing-Glyphs"); got != "1" {
		t.Fatalf("expected 1 missing glyph, got %q", got)
	}
	records := readCSV(t, response)
	if len(records) != 4 { t.Fatalf("expected 3 glyph rows, got %d", len(records) - 1) }

	nonZero := func(record []string) bool {
		for _, value := range record[1:] {
			if value != "0" { return true }
		}
		return false
	}
	if !nonZero(records[1]) { t.Fatal("expected 'A' to have set pixels") }
	if nonZero(records[3]) { t.Fatal("expected space to be empty") }

	response = get(t, server, "/glyph.txt", url.Values{"char": {"A"}, "size": {"16"}})
	text, err := io.ReadAll(response.Body)
	if err != nil { t.Fatalf("reading body: %s", err) }
	if !strings.Contains(string(text), "#") {
		t.Fatalf("expected a drawn glyph, got:\n%s", text)
	}
}
