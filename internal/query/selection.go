package query

import (
	"github.com/foodhub/foodhub/internal/models"
)

// RatingRange is an inclusive bound on the rating column.
type RatingRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Selection is the set of values a user picked per column. A column with no
// values places no constraint on the result.
type Selection struct {
	Values map[models.Column][]string
	Rating *RatingRange
}

// Set replaces the selected values of a column. Empty values clear it.
func (s *Selection) Set(col models.Column, values ...string) {
	if len(values) == 0 {
		delete(s.Values, col)
		return
	}
	if s.Values == nil {
		s.Values = make(map[models.Column][]string)
	}
	s.Values[col] = values
}

// Get returns the values selected for a column.
func (s Selection) Get(col models.Column) []string {
	return s.Values[col]
}

// IsEmpty reports whether the selection constrains nothing.
func (s Selection) IsEmpty() bool {
	if s.Rating != nil {
		return false
	}
	for _, v := range s.Values {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Predicates converts the selection into predicates, in the fixed column
// order of models.RequiredColumns followed by the rating range. Cuisine
// selections are tags and become a CuisineMembership built from rows.
func (s Selection) Predicates(rows []models.Restaurant) []Predicate {
	var preds []Predicate
	for _, col := range models.RequiredColumns {
		values := s.Values[col]
		if len(values) == 0 {
			continue
		}
		if col == models.ColumnCuisines {
			preds = append(preds, NewCuisineMembership(rows, values))
			continue
		}
		preds = append(preds, NewEqualitySet(col, values))
	}
	if s.Rating != nil {
		preds = append(preds, &Range{Col: models.ColumnRating, Lo: s.Rating.Min, Hi: s.Rating.Max})
	}
	return preds
}

// Apply filters rows by the selection.
func (s Selection) Apply(rows []models.Restaurant) []models.Restaurant {
	return Filter(rows, s.Predicates(rows)...)
}
