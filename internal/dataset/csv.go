// internal/dataset/csv.go
// Pembaca CSV produksi (Latin-1 atau UTF-8) -> []dca.ProductionRecord.

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"dca-oilgas/internal/dca"
)

const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

var ErrMissingColumn = errors.New("missing column")

// ParseError menunjuk baris (1-based, header = 1) yang gagal diparse.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// alias header -> kolom kanonik
var headerAliases = map[string]string{
	"campo": "field", "field": "field",
	"yacimiento": "reservoir", "reservoir": "reservoir",
	"pozo": "well", "well": "well",
	"unidad": "fluid", "fluid": "fluid",
	"fecha": "date", "date": "date",
	"q": "rate", "rate": "rate",
}

var required = []string{"field", "reservoir", "well", "fluid", "date", "rate"}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// NormalizeEncoding menerima variasi nama (latin-1, ISO-8859-1, utf-8, ...).
func NormalizeEncoding(enc string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(enc), "_", "-")) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

// ReadCSV decodes r with the given encoding and parses one record per row.
// Columns are matched by header name (Spanish or English, any case) so their
// order does not matter; extra columns are ignored. Dates are truncated to the
// calendar day.
func ReadCSV(r io.Reader, encoding string) ([]dca.ProductionRecord, error) {
	enc, err := NormalizeEncoding(encoding)
	if err != nil {
		return nil, err
	}
	if enc == EncodingLatin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}
	idx, err := mapHeader(header)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	var out []dca.ProductionRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if blank(row) {
			continue
		}
		rec, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFile membuka path lalu ReadCSV.
func ReadFile(path, encoding string) ([]dca.ProductionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadCSV(f, encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

func mapHeader(header []string) (map[string]int, error) {
	idx := map[string]int{}
	for i, h := range header {
		// BOM UTF-8, juga saat terbaca sebagai Latin-1
		h = strings.TrimPrefix(strings.TrimPrefix(h, "\ufeff"), "\u00ef\u00bb\u00bf")
		h = strings.ToLower(strings.TrimSpace(h))
		if canon, ok := headerAliases[h]; ok {
			if _, dup := idx[canon]; !dup {
				idx[canon] = i
			}
		}
	}
	var missing []string
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int, line int) (dca.ProductionRecord, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	d, err := ParseDate(get("date"))
	if err != nil {
		return dca.ProductionRecord{}, &ParseError{Line: line, Column: "date", Err: err}
	}
	q, err := strconv.ParseFloat(get("rate"), 64)
	if err != nil {
		return dca.ProductionRecord{}, &ParseError{Line: line, Column: "rate", Err: err}
	}
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return dca.ProductionRecord{}, &ParseError{Line: line, Column: "rate", Err: fmt.Errorf("rate must be a finite value >= 0, got %v", q)}
	}

	return dca.ProductionRecord{
		Field:     get("field"),
		Reservoir: get("reservoir"),
		Well:      get("well"),
		Fluid:     get("fluid"),
		Date:      d,
		Rate:      q,
	}, nil
}

// ParseDate mencoba beberapa layout umum lalu membuang komponen waktu.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
