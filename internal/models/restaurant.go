package models

import (
	"strconv"
	"strings"
)

// Column names one of the fixed dataset columns a query can reference.
type Column string

const (
	ColumnName     Column = "restaurants"
	ColumnType     Column = "rest_type"
	ColumnLocation Column = "location"
	ColumnCuisines Column = "cuisines"
	ColumnCost     Column = "cost_for_two"
	ColumnRating   Column = "rating"
	ColumnVotes    Column = "votes"
)

// RequiredColumns lists the header names every dataset must provide, in the
// order filters are applied.
var RequiredColumns = []Column{
	ColumnName,
	ColumnType,
	ColumnLocation,
	ColumnCuisines,
	ColumnCost,
	ColumnRating,
	ColumnVotes,
}

// ParseColumn returns the Column for a header name.
func ParseColumn(s string) (Column, bool) {
	c := Column(strings.TrimSpace(s))
	for _, known := range RequiredColumns {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// IsNumeric reports whether values of the column are compared as numbers.
func (c Column) IsNumeric() bool {
	switch c {
	case ColumnCost, ColumnRating, ColumnVotes:
		return true
	default:
		return false
	}
}

// Restaurant is one row of the dataset. Values are never modified after load.
type Restaurant struct {
	Name       string   `json:"restaurants"`
	Type       string   `json:"rest_type"`
	Location   string   `json:"location"`
	Cuisines   string   `json:"cuisines"`
	CostForTwo *float64 `json:"cost_for_two"`
	Rating     *float64 `json:"rating"`
	Votes      int      `json:"votes"`

	// Extra holds the remaining source columns verbatim.
	Extra map[string]string `json:"extra,omitempty"`
}

// Text returns the display value of a column. Missing numbers render as "".
func (r *Restaurant) Text(c Column) string {
	switch c {
	case ColumnName:
		return r.Name
	case ColumnType:
		return r.Type
	case ColumnLocation:
		return r.Location
	case ColumnCuisines:
		return r.Cuisines
	case ColumnVotes:
		return strconv.Itoa(r.Votes)
	case ColumnCost, ColumnRating:
		if v, ok := r.Number(c); ok {
			return FormatNumber(v)
		}
		return ""
	default:
		return r.Extra[string(c)]
	}
}

// Number returns the numeric value of a column and whether it is present.
func (r *Restaurant) Number(c Column) (float64, bool) {
	switch c {
	case ColumnCost:
		if r.CostForTwo == nil {
			return 0, false
		}
		return *r.CostForTwo, true
	case ColumnRating:
		if r.Rating == nil {
			return 0, false
		}
		return *r.Rating, true
	case ColumnVotes:
		return float64(r.Votes), true
	default:
		return 0, false
	}
}

// CuisineTags returns the cuisine tag set of the row in source order.
func (r *Restaurant) CuisineTags() []string {
	return SplitCuisines(r.Cuisines)
}

// SplitCuisines splits a comma-separated cuisines string into trimmed,
// non-empty tags. Repeated tags are kept; callers deduplicate.
func SplitCuisines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FormatNumber renders a float without trailing zeros ("800", "4.1").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
