package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Row represents a single data row with column name to value mapping.
type Row map[string]string

// Frame is a header row plus the raw records beneath it, as read from a
// CSV file or a spreadsheet range.
type Frame struct {
	Headers []string
	Records [][]string
}

// Rows returns the records keyed by header name.
func (f *Frame) Rows() []Row {
	rows := make([]Row, 0, len(f.Records))
	for _, record := range f.Records {
		row := make(Row, len(f.Headers))
		for j, h := range f.Headers {
			if j < len(record) {
				row[h] = record[j]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Slice keeps records in the given range [start, end] (1-based, inclusive).
// Record 1 is the first data row after the header. end <= 0 means "to the
// last record"; an end beyond the data is clamped.
func (f *Frame) Slice(start, end int) (*Frame, error) {
	if start < 1 {
		return nil, fmt.Errorf("csv: range start must be >= 1, got %d", start)
	}
	if end > 0 && end < start {
		return nil, fmt.Errorf("csv: range end (%d) must be >= start (%d)", end, start)
	}
	if end <= 0 || end > len(f.Records) {
		end = len(f.Records)
	}
	if start > len(f.Records) {
		return &Frame{Headers: f.Headers, Records: [][]string{}}, nil
	}
	return &Frame{Headers: f.Headers, Records: f.Records[start-1 : end]}, nil
}

// ReadCSV parses CSV data. The first record is treated as headers.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: empty input (no header row)")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return &Frame{Headers: headers, Records: records[1:]}, nil
}

// LoadCSV reads a CSV file (optionally gzip-compressed, by ".gz" suffix) and
// returns rows as maps of column to value.
func LoadCSV(path string) ([]Row, error) {
	frame, err := loadCSVFrame(path)
	if err != nil {
		return nil, err
	}
	return frame.Rows(), nil
}

// LoadCSVRange reads rows in the given range [start, end] (1-based, inclusive).
// Row 1 is the first data row (after headers).
func LoadCSVRange(path string, start, end int) ([]Row, error) {
	if end < 1 {
		return nil, fmt.Errorf("csv: range end must be >= 1, got %d", end)
	}
	frame, err := loadCSVFrame(path)
	if err != nil {
		return nil, err
	}
	sliced, err := frame.Slice(start, end)
	if err != nil {
		return nil, err
	}
	return sliced.Rows(), nil
}

func loadCSVFrame(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("csv: gzip %s: %w", path, err)
		}
		defer gz.Close() //nolint:errcheck
		r = gz
	}

	frame, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return frame, nil
}
