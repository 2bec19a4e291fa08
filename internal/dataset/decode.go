package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/foodhub/foodhub/internal/models"
	"github.com/spf13/cast"
)

// missingMarkers are cell values that mean "no value" in numeric columns.
var missingMarkers = map[string]bool{
	"":    true,
	"-":   true,
	"new": true,
	"nan": true,
	"na":  true,
}

// Decode converts a frame into restaurant records. The header must contain
// every required column; other columns are kept in Restaurant.Extra.
func Decode(frame *Frame) ([]models.Restaurant, error) {
	if err := checkHeader(frame.Headers); err != nil {
		return nil, err
	}

	rows := frame.Rows()
	restaurants := make([]models.Restaurant, 0, len(rows))
	for i, row := range rows {
		r, err := decodeRow(row)
		if err != nil {
			// +2: one for the header, one for 1-based numbering
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

func checkHeader(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, c := range models.RequiredColumns {
		if !present[string(c)] {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func decodeRow(row Row) (models.Restaurant, error) {
	r := models.Restaurant{
		Name:     strings.TrimSpace(row[string(models.ColumnName)]),
		Type:     strings.TrimSpace(row[string(models.ColumnType)]),
		Location: strings.TrimSpace(row[string(models.ColumnLocation)]),
		Cuisines: strings.TrimSpace(row[string(models.ColumnCuisines)]),
	}

	var err error
	if r.CostForTwo, err = parseNumber(row[string(models.ColumnCost)]); err != nil {
		return r, fmt.Errorf("%s: %w", models.ColumnCost, err)
	}
	if r.Rating, err = parseRating(row[string(models.ColumnRating)]); err != nil {
		return r, fmt.Errorf("%s: %w", models.ColumnRating, err)
	}
	votes, err := parseNumber(row[string(models.ColumnVotes)])
	if err != nil {
		return r, fmt.Errorf("%s: %w", models.ColumnVotes, err)
	}
	if votes != nil && *votes > 0 {
		r.Votes = int(math.Round(*votes))
	}

	for k, v := range row {
		if _, known := models.ParseColumn(k); known || k == "" {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[k] = v
	}
	return r, nil
}

// parseNumber converts a cell to a number. Missing markers yield nil;
// thousands separators ("1,200") are accepted.
func parseNumber(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(s)] {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, nil
	}
	return &v, nil
}

// parseRating accepts plain numbers and "4.1/5" style values.
func parseRating(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if before, _, ok := strings.Cut(s, "/"); ok {
		s = strings.TrimSpace(before)
	}
	return parseNumber(s)
}
