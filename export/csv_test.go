package export

import "bytes"
import "errors"
import "strings"
import "testing"
import "encoding/csv"

import "github.com/tinne26/dotmatrix/bitmap"

func TestHeader(t *testing.T) {
	header := Header(16)
	if len(header) != 33 {
		t.Fatalf("expected 33 columns, got %d", len(header))
	}
	if header[0] != "char" || header[1] != "byte0" || header[32] != "byte31" {
		t.Fatalf("unexpected header %v", header)
	}
	if len(Header(10)) != 21 {
		t.Fatalf("expected 21 columns for size 10, got %d", len(Header(10)))
	}
}

func TestWriteCSV(t *testing.T) {
	a := bitmap.New(8)
	a[0] = 0x81
	comma := bitmap.New(8)
	comma[7] = 255

	var buffer bytes.Buffer
	err := WriteCSV(&buffer, 8, []rune{'A', ',', 'A'}, []bitmap.Bitmap{a, comma, a})
	if err != nil { t.Fatalf("unexpected error: %s", err) }

	records, err := csv.NewReader(strings.NewReader(buffer.String())).ReadAll()
	if err != nil { t.Fatalf("output is not valid CSV: %s", err) }
	if len(records) != 4 { t.Fatalf("expected 4 records, got %d", len(records)) }
	if records[1][0] != "A" || records[1][1] != "129" || records[1][2] != "0" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[2][0] != "," || records[2][8] != "255" {
		t.Fatalf("unexpected second row %v", records[2])
	}
	if strings.Join(records[1], ",") != strings.Join(records[3], ",") {
		t.Fatal("repeated runes must produce identical rows")
	}
}

func TestWriteCSVMismatch(t *testing.T) {
	var buffer bytes.Buffer
	err := WriteCSV(&buffer, 8, []rune{'A'}, nil)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	err = WriteCSV(&buffer, 16, []rune{'A'}, []bitmap.Bitmap{bitmap.New(8)})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
