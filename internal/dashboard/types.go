package dashboard

import (
	"github.com/foodhub/foodhub/internal/metrics"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/foodhub/foodhub/internal/query"
	"github.com/foodhub/foodhub/internal/ranking"
)

// Request carries every filter the dashboard page offers. All fields are
// optional.
type Request struct {
	// Names drives the restaurant details panel.
	Names []string `json:"names,omitempty"`
	// Types drives the locations-by-type panel.
	Types []string `json:"types,omitempty"`
	// Cuisines are cuisine tags for the restaurants-by-cuisine panel.
	Cuisines []string `json:"cuisines,omitempty"`
	// Locations and Costs drive the location/cost panel.
	Locations []string `json:"locations,omitempty"`
	Costs     []string `json:"costs,omitempty"`
	// Compare lists the restaurants of the rating comparison chart. Empty
	// means the first restaurant of the dataset.
	Compare []string `json:"compare,omitempty"`
	// Rating bounds the comparison chart. Nil means the full rating range.
	Rating *query.RatingRange `json:"rating,omitempty"`
	// TopN is the number of rows in the votes pie chart. 0 uses the default.
	TopN int `json:"top_n,omitempty"`
}

// Dashboard is the computed content of every panel.
type Dashboard struct {
	Details      []RestaurantDetail `json:"details"`
	Compare      ComparePanel       `json:"compare"`
	TypeLocation TypeLocationPanel  `json:"type_locations"`
	Cuisines     CuisinePanel       `json:"cuisines"`
	Top          TopPanel           `json:"top"`
	LocationCost LocationCostPanel  `json:"location_cost"`
}

// RestaurantDetail summarizes every row of one restaurant name.
type RestaurantDetail struct {
	Name       string   `json:"name"`
	Count      int      `json:"count"`
	Cuisines   []string `json:"cuisines"`
	CostForTwo *int     `json:"cost_for_two"`
	MeanRating *float64 `json:"mean_rating"`
	Stars      int      `json:"stars"`
	StarGlyphs string   `json:"star_glyphs"`
}

// ComparePanel charts the mean rating of selected restaurants within a
// rating range.
type ComparePanel struct {
	Names  []string          `json:"names"`
	Rating query.RatingRange `json:"rating"`
	Count  int               `json:"count"`
	Groups []ranking.Group   `json:"groups"`
	Chart  *ChartConfig      `json:"chart,omitempty"`
}

// TypeLocationPanel counts rows per location for the selected restaurant types.
type TypeLocationPanel struct {
	Types  []string        `json:"types"`
	Count  int             `json:"count"`
	Groups []ranking.Group `json:"groups"`
	Chart  *ChartConfig    `json:"chart,omitempty"`
}

// CuisinePanel lists restaurants serving any of the selected cuisine tags.
type CuisinePanel struct {
	Tags        []string `json:"tags"`
	Candidates  []string `json:"candidates"`
	Restaurants []string `json:"restaurants"`
}

// TopPanel shows the first N rows of the preview and their votes.
type TopPanel struct {
	N     int                 `json:"n"`
	Rows  []models.Restaurant `json:"rows"`
	Chart *ChartConfig        `json:"chart,omitempty"`
}

// LocationCostPanel summarizes restaurants at the selected locations and costs.
type LocationCostPanel struct {
	Locations   []string             `json:"locations"`
	Costs       []string             `json:"costs"`
	Count       int                  `json:"count"`
	MeanCost    *float64             `json:"mean_cost"`
	MeanRating  *float64             `json:"mean_rating"`
	Stars       int                  `json:"stars"`
	StarGlyphs  string               `json:"star_glyphs"`
	Restaurants []ranking.ValueCount `json:"restaurants"`
}

// Options are the values offered by each filter control.
type Options struct {
	Rows      int      `json:"rows"`
	Names     []string `json:"names"`
	Types     []string `json:"types"`
	Locations []string `json:"locations"`
	Costs     []string `json:"costs"`
	Cuisines  []string `json:"cuisines"`
	RatingMin *float64 `json:"rating_min"`
	RatingMax *float64 `json:"rating_max"`
}

// QueryResult is the outcome of an ad hoc predicate query.
type QueryResult struct {
	Total   int                 `json:"total"`
	Rows    []models.Restaurant `json:"rows"`
	Summary metrics.Summary     `json:"summary"`
}
