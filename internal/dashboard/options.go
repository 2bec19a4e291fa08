package dashboard

import (
	"slices"

	"github.com/foodhub/foodhub/internal/metrics"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/foodhub/foodhub/internal/ranking"
)

// Options lists the values each filter control offers. Names, types,
// locations and costs keep dataset order; cuisine tags are sorted.
func (s *Service) Options() Options {
	rows := s.table.Rows()
	o := Options{
		Rows:      len(rows),
		Names:     orEmpty(ranking.Distinct(rows, models.ColumnName)),
		Types:     orEmpty(ranking.Distinct(rows, models.ColumnType)),
		Locations: orEmpty(ranking.Distinct(rows, models.ColumnLocation)),
		Costs:     orEmpty(ranking.Distinct(rows, models.ColumnCost)),
		Cuisines:  metrics.DistinctCuisines(rows),
	}
	slices.Sort(o.Cuisines)

	if r := s.ratingBounds(); r != nil {
		o.RatingMin = &r.Min
		o.RatingMax = &r.Max
	}
	return o
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
