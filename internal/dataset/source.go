package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/foodhub/foodhub/internal/models"
	"github.com/klauspost/compress/gzip"
)

//go:generate go tool mockgen -source=source.go -destination=mock_source.go -package=dataset

// ErrDataUnavailable is returned when the dataset cannot be read or parsed.
var ErrDataUnavailable = errors.New("dataset unavailable")

// Source produces the restaurant records of a dataset.
type Source interface {
	Load(ctx context.Context) ([]models.Restaurant, error)
}

// Options describes where the dataset lives and which part of it to read.
type Options struct {
	// Path is a local file (.csv, .csv.gz, .xlsx) or an Azure Blob URL.
	Path string
	// Sheet is the worksheet name for .xlsx files; empty selects the first.
	Sheet string
	// Columns is the spreadsheet column range for .xlsx files, e.g. "B:N".
	Columns string
	// MaxRows limits the number of data rows read (0 = all).
	MaxRows int
}

// NewSource returns the Source matching opts.Path.
func NewSource(opts Options) (Source, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("%w: no dataset path configured", ErrDataUnavailable)
	}
	if isBlobURL(opts.Path) {
		return &BlobSource{Options: opts}, nil
	}
	return &FileSource{Options: opts}, nil
}

// FileSource reads the dataset from a local file.
type FileSource struct {
	Options
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return decodeBytes(s.Options, path.Base(s.Path), data)
}

// decodeBytes picks a reader by file extension and decodes the records.
func decodeBytes(opts Options, name string, data []byte) ([]models.Restaurant, error) {
	frame, err := readFrame(opts, name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, name, err)
	}
	rows, err := Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, name, err)
	}
	return rows, nil
}

func readFrame(opts Options, name string, data []byte) (*Frame, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return ReadXLSX(bytes.NewReader(data), opts.Sheet, opts.Columns, opts.MaxRows)
	case strings.HasSuffix(lower, ".csv.gz"):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close() //nolint:errcheck
		return readCSVLimited(gz, opts.MaxRows)
	case strings.HasSuffix(lower, ".csv"):
		return readCSVLimited(bytes.NewReader(data), opts.MaxRows)
	default:
		return nil, fmt.Errorf("unsupported dataset format (want .csv, .csv.gz or .xlsx)")
	}
}

func readCSVLimited(r io.Reader, maxRows int) (*Frame, error) {
	frame, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	if maxRows > 0 {
		return frame.Slice(1, maxRows)
	}
	return frame, nil
}
