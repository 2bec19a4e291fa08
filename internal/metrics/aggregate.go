package metrics

import (
	"math"
	"strings"

	"github.com/foodhub/foodhub/internal/models"
)

// MaxStars is the top of the rating scale.
const MaxStars = 5

// StarGlyph is the character repeated to draw a star rating.
const StarGlyph = "★"

// Summary holds the scalar aggregates of a row subset. Means over an empty or
// all-missing subset are nil and render as JSON null.
type Summary struct {
	Count            int      `json:"count"`
	MeanRating       *float64 `json:"mean_rating"`
	RatingStdDev     *float64 `json:"rating_stddev"`
	Stars            int      `json:"stars"`
	StarGlyphs       string   `json:"star_glyphs"`
	MeanCost         *float64 `json:"mean_cost"`
	DistinctCuisines []string `json:"distinct_cuisines"`
}

// Aggregate summarizes rows. The rating is rounded to one decimal before the
// star count is derived from it; the cost is rounded to one decimal.
func Aggregate(rows []models.Restaurant) Summary {
	s := Summary{
		Count:            len(rows),
		DistinctCuisines: DistinctCuisines(rows),
	}
	if mean, ok := MeanRating(rows); ok {
		rounded := Round1(mean)
		s.MeanRating = &rounded
		s.Stars = Stars(rounded, true)
		sd := Round1(StdDev(Present(column(rows, models.ColumnRating))))
		s.RatingStdDev = &sd
	}
	s.StarGlyphs = StarString(s.Stars)
	if cost, ok := MeanCost(rows); ok {
		s.MeanCost = &cost
	}
	return s
}

// MeanRating is the mean of the present ratings.
func MeanRating(rows []models.Restaurant) (float64, bool) {
	return MeanPresent(column(rows, models.ColumnRating))
}

// MeanCost is the mean of the present costs, rounded to one decimal.
func MeanCost(rows []models.Restaurant) (float64, bool) {
	mean, ok := MeanPresent(column(rows, models.ColumnCost))
	if !ok {
		return 0, false
	}
	return Round1(mean), true
}

// MeanRatingZeroFilled averages ratings counting missing ones as zero. It is
// undefined only for an empty subset.
func MeanRatingZeroFilled(rows []models.Restaurant) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	sum := 0.0
	for i := range rows {
		if rows[i].Rating != nil && !math.IsNaN(*rows[i].Rating) {
			sum += *rows[i].Rating
		}
	}
	return sum / float64(len(rows)), true
}

// Stars maps a mean rating to a star count: round half to even, clamped to
// [0, MaxStars]. An undefined mean gives zero stars.
func Stars(mean float64, ok bool) int {
	if !ok || math.IsNaN(mean) {
		return 0
	}
	n := int(math.RoundToEven(mean))
	return max(0, min(n, MaxStars))
}

// StarString draws n stars.
func StarString(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(StarGlyph, n)
}

// DistinctCuisines returns the union of the cuisine tags of rows in first-seen
// order.
func DistinctCuisines(rows []models.Restaurant) []string {
	seen := make(map[string]bool)
	out := []string{}
	for i := range rows {
		for _, tag := range rows[i].CuisineTags() {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

func column(rows []models.Restaurant, c models.Column) []*float64 {
	out := make([]*float64, len(rows))
	for i := range rows {
		switch c {
		case models.ColumnRating:
			out[i] = rows[i].Rating
		case models.ColumnCost:
			out[i] = rows[i].CostForTwo
		}
	}
	return out
}
