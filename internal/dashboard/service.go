// Package dashboard composes the panels of the restaurant dashboard from the
// filter, aggregation and ranking packages.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/metrics"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/foodhub/foodhub/internal/query"
	"github.com/foodhub/foodhub/internal/ranking"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPreviewRows is the number of leading rows the top-N panel draws from.
	DefaultPreviewRows = 50
	// DefaultTopN is the top-N count used when a request does not set one.
	DefaultTopN = 3
)

// ErrNotFound is returned when no row has the requested restaurant name.
var ErrNotFound = errors.New("restaurant not found")

// Service computes dashboard panels over a loaded table. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	table       *dataset.Table
	previewRows int
	defaultTopN int
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPreviewRows sets how many leading rows the top-N panel considers.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// WithDefaultTopN sets the top-N count used when a request leaves it unset.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service over table.
func NewService(table *dataset.Table, opts ...Option) *Service {
	s := &Service{
		table:       table,
		previewRows: DefaultPreviewRows,
		defaultTopN: DefaultTopN,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rows returns the number of rows in the table.
func (s *Service) Rows() int {
	return s.table.Len()
}

// DefaultTopN returns the configured default top-N count.
func (s *Service) DefaultTopN() int {
	return s.defaultTopN
}

// Build computes every panel for req. Panels are independent and computed
// concurrently over the shared table.
func (s *Service) Build(ctx context.Context, req Request) (*Dashboard, error) {
	start := time.Now()
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.Details = s.RestaurantDetails(req.Names)
		return ctx.Err()
	})
	g.Go(func() error {
		d.Compare = s.CompareRatings(req.Compare, req.Rating)
		return ctx.Err()
	})
	g.Go(func() error {
		d.TypeLocation = s.LocationsForTypes(req.Types)
		return ctx.Err()
	})
	g.Go(func() error {
		d.Cuisines = s.RestaurantsWithCuisines(req.Cuisines)
		return ctx.Err()
	})
	g.Go(func() error {
		n := req.TopN
		if n == 0 {
			n = s.defaultTopN
		}
		if n < 0 {
			return fmt.Errorf("%w: %d", ranking.ErrInvalidTopN, n)
		}
		d.Top = s.TopByVotes(n)
		return ctx.Err()
	})
	g.Go(func() error {
		d.LocationCost = s.LocationCost(req.Locations, req.Costs)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debug("dashboard built", "rows", s.table.Len(), "elapsed", time.Since(start))
	return &d, nil
}

// RestaurantDetails summarizes each selected name. No names, no details.
func (s *Service) RestaurantDetails(names []string) []RestaurantDetail {
	details := make([]RestaurantDetail, 0, len(names))
	for _, name := range names {
		details = append(details, s.detail(name))
	}
	return details
}

// Restaurant returns the details of one name, or ErrNotFound.
func (s *Service) Restaurant(name string) (RestaurantDetail, error) {
	d := s.detail(name)
	if d.Count == 0 {
		return d, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

func (s *Service) detail(name string) RestaurantDetail {
	rows := query.Filter(s.table.Rows(), query.NewEqualitySet(models.ColumnName, []string{name}))
	sum := metrics.Aggregate(rows)

	d := RestaurantDetail{
		Name:       name,
		Count:      sum.Count,
		Cuisines:   sum.DistinctCuisines,
		MeanRating: sum.MeanRating,
		Stars:      sum.Stars,
		StarGlyphs: sum.StarGlyphs,
	}
	if sum.MeanCost != nil {
		cost := int(math.RoundToEven(*sum.MeanCost))
		d.CostForTwo = &cost
	}
	return d
}

// CompareRatings charts the mean rating per restaurant for names within the
// rating range. Empty names select the first restaurant in the table; a nil
// range spans every rating present.
func (s *Service) CompareRatings(names []string, rating *query.RatingRange) ComparePanel {
	rows := s.table.Rows()
	if len(names) == 0 {
		if first := ranking.Distinct(rows, models.ColumnName); len(first) > 0 {
			names = first[:1]
		}
	}
	if rating == nil {
		rating = s.ratingBounds()
	}

	p := ComparePanel{Names: names, Groups: []ranking.Group{}}
	if rating != nil {
		p.Rating = *rating
	}
	if len(names) == 0 || rating == nil {
		return p
	}

	var sel query.Selection
	sel.Set(models.ColumnName, names...)
	sel.Rating = rating
	matched := sel.Apply(rows)
	p.Count = len(matched)
	if p.Count == 0 {
		return p
	}

	groups, err := ranking.GroupBy(matched, models.ColumnName, models.ColumnRating, ranking.OpMean)
	if err != nil {
		s.logger.Error("grouping ratings", "error", err)
		return p
	}
	p.Groups = ranking.SortGroups(groups, ranking.ByKey)
	p.Chart = barChart("Compare restaurants by rating", "restaurants", "rating", compareColor, p.Groups)
	return p
}

// LocationsForTypes counts rows per location for the selected types.
func (s *Service) LocationsForTypes(types []string) TypeLocationPanel {
	p := TypeLocationPanel{Types: types, Groups: []ranking.Group{}}
	if len(types) == 0 {
		return p
	}

	matched := query.Filter(s.table.Rows(), query.NewEqualitySet(models.ColumnType, types))
	p.Count = len(matched)
	if p.Count == 0 {
		return p
	}

	groups, err := ranking.GroupBy(matched, models.ColumnLocation, "", ranking.OpCount)
	if err != nil {
		s.logger.Error("grouping locations", "error", err)
		return p
	}
	p.Groups = ranking.SortGroups(groups, ranking.ByKey)
	p.Chart = barChart(fmt.Sprintf("Restaurant type: %v based on location", types), "location", "rest_type", locationColor, p.Groups)
	return p
}

// RestaurantsWithCuisines lists the distinct names of rows whose cuisines
// string contains any of tags.
func (s *Service) RestaurantsWithCuisines(tags []string) CuisinePanel {
	p := CuisinePanel{Tags: tags, Candidates: []string{}, Restaurants: []string{}}
	if len(tags) == 0 {
		return p
	}

	rows := s.table.Rows()
	membership := query.NewCuisineMembership(rows, tags)
	for c := range membership.Candidates {
		p.Candidates = append(p.Candidates, c)
	}
	slices.Sort(p.Candidates)

	if names := ranking.Distinct(query.Filter(rows, membership), models.ColumnName); names != nil {
		p.Restaurants = names
	}
	return p
}

// TopByVotes charts the votes of the first n rows of the preview. The rows
// keep their dataset order.
func (s *Service) TopByVotes(n int) TopPanel {
	preview := ranking.TopN(s.table.Rows(), s.previewRows)
	top := ranking.TopN(preview, n)

	p := TopPanel{N: n, Rows: top}
	groups, err := ranking.GroupBy(top, models.ColumnName, models.ColumnVotes, ranking.OpSum)
	if err != nil {
		s.logger.Error("grouping votes", "error", err)
		return p
	}
	p.Chart = pieChart(fmt.Sprintf("Top %d Restaurants based on votes", n), "votes", groups)
	return p
}

// LocationCost summarizes rows at the selected locations and costs. An
// empty list places no constraint on its column. Missing ratings count as
// zero in the average.
func (s *Service) LocationCost(locations, costs []string) LocationCostPanel {
	var sel query.Selection
	sel.Set(models.ColumnLocation, locations...)
	sel.Set(models.ColumnCost, costs...)
	matched := sel.Apply(s.table.Rows())

	p := LocationCostPanel{
		Locations:   locations,
		Costs:       costs,
		Count:       len(matched),
		Restaurants: ranking.DistinctWithCounts(ranking.Column(matched, models.ColumnName)),
	}
	if cost, ok := metrics.MeanCost(matched); ok {
		p.MeanCost = &cost
	}
	if mean, ok := metrics.MeanRatingZeroFilled(matched); ok {
		rounded := metrics.Round1(mean)
		p.MeanRating = &rounded
		p.Stars = metrics.Stars(rounded, true)
	}
	p.StarGlyphs = metrics.StarString(p.Stars)
	return p
}

// Query filters the table with decoded predicate specs. limit caps the
// returned rows (0 = all); the summary always covers every match.
func (s *Service) Query(specs []query.PredicateSpec, limit int) (*QueryResult, error) {
	rows := s.table.Rows()
	preds, err := query.DecodeAll(specs, rows)
	if err != nil {
		return nil, err
	}
	matched := query.Filter(rows, preds...)

	res := &QueryResult{
		Total:   len(matched),
		Rows:    matched,
		Summary: metrics.Aggregate(matched),
	}
	if limit > 0 {
		res.Rows = ranking.TopN(matched, limit)
	}
	if res.Rows == nil {
		res.Rows = []models.Restaurant{}
	}
	return res, nil
}

func (s *Service) ratingBounds() *query.RatingRange {
	var r *query.RatingRange
	for _, row := range s.table.Rows() {
		if row.Rating == nil {
			continue
		}
		v := *row.Rating
		if r == nil {
			r = &query.RatingRange{Min: v, Max: v}
			continue
		}
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	return r
}
