package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultColumns is the spreadsheet range holding the dataset: the first
// lettered column is a row index and is skipped.
const DefaultColumns = "B:N"

// ReadXLSX reads a worksheet range from an .xlsx workbook. columns is a
// spreadsheet column range such as "B:N"; the first row in the range is the
// header. maxRows limits the number of data rows (0 = all). An empty sheet
// name selects the first worksheet.
func ReadXLSX(r io.Reader, sheet, columns string, maxRows int) (*Frame, error) {
	first, last, err := parseColumnRange(columns)
	if err != nil {
		return nil, err
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer wb.Close() //nolint:errcheck

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q is empty (no header row)", sheet)
	}

	headers := cellRange(rows[0], first, last)
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	data := rows[1:]
	if maxRows > 0 && len(data) > maxRows {
		data = data[:maxRows]
	}
	records := make([][]string, 0, len(data))
	for _, row := range data {
		records = append(records, cellRange(row, first, last))
	}
	return &Frame{Headers: headers, Records: records}, nil
}

// parseColumnRange converts "B:N" into zero-based inclusive column indexes.
func parseColumnRange(columns string) (int, int, error) {
	if columns == "" {
		columns = DefaultColumns
	}
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(columns)), ":")
	if !ok {
		to = from
	}
	first, err := excelize.ColumnNameToNumber(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("xlsx: invalid column range %q: %w", columns, err)
	}
	last, err := excelize.ColumnNameToNumber(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, fmt.Errorf("xlsx: invalid column range %q: %w", columns, err)
	}
	if last < first {
		return 0, 0, fmt.Errorf("xlsx: invalid column range %q: end before start", columns)
	}
	return first - 1, last - 1, nil
}

// cellRange copies row[first..last], padding cells the sheet left out.
func cellRange(row []string, first, last int) []string {
	out := make([]string, last-first+1)
	for i := first; i <= last && i < len(row); i++ {
		out[i-first] = row[i]
	}
	return out
}
