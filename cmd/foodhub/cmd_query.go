package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/query"
	"github.com/foodhub/foodhub/internal/ranking"
	"github.com/foodhub/foodhub/internal/spinner"
	"github.com/spf13/cobra"
)

type queryOptions struct {
	names     []string
	types     []string
	cuisines  []string
	locations []string
	costs     []string
	compare   []string
	ratingMin float64
	ratingMax float64
	top       string
	json      bool
}

func newQueryCommand(g *globalOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the dashboard panels for a set of filters",
		Long: `Print the dashboard panels for a set of filters.

Every filter flag can be repeated. A filter left out places no constraint on
its column. Output is a set of text tables on a terminal and JSON otherwise
or when --json is given.

Examples:
  foodhub query --name Jalsa --cuisine Chinese --cuisine Thai
  foodhub query --compare Jalsa --compare "Spice Elephant" --rating-min 4 --rating-max 5
  foodhub query --location BTM --cost 800 --top 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context(), cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			req := dashboard.Request{
				Names:     opts.names,
				Types:     opts.types,
				Cuisines:  opts.cuisines,
				Locations: opts.locations,
				Costs:     opts.costs,
				Compare:   opts.compare,
				TopN:      resolveTopN(opts.top, svc.DefaultTopN()),
			}
			minSet, maxSet := cmd.Flags().Changed("rating-min"), cmd.Flags().Changed("rating-max")
			if minSet || maxSet {
				r, err := ratingRange(svc.Options(), opts.ratingMin, minSet, opts.ratingMax, maxSet)
				if err != nil {
					return err
				}
				req.Rating = r
			}

			d, err := svc.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.json, d, printDashboard)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&opts.names, "name", nil, "Restaurant name for the details panel")
	f.StringArrayVar(&opts.types, "type", nil, "Restaurant type for the locations panel")
	f.StringArrayVar(&opts.cuisines, "cuisine", nil, "Cuisine for the cuisine panel")
	f.StringArrayVar(&opts.locations, "location", nil, "Location for the location and cost panel")
	f.StringArrayVar(&opts.costs, "cost", nil, "Cost for two for the location and cost panel")
	f.StringArrayVar(&opts.compare, "compare", nil, "Restaurant to compare by rating")
	f.Float64Var(&opts.ratingMin, "rating-min", 0, "Lowest rating to compare")
	f.Float64Var(&opts.ratingMax, "rating-max", 5, "Highest rating to compare")
	f.StringVar(&opts.top, "top", "", "How many top restaurants (based on votes) to show")
	f.BoolVar(&opts.json, "json", false, "Write JSON instead of tables")

	return cmd
}

// resolveTopN parses the --top flag. Invalid input falls back to the
// configured default.
func resolveTopN(text string, fallback int) int {
	n, err := ranking.ParseTopN(text, fallback)
	if err != nil {
		slog.Warn("ignoring --top", "error", err, "default", fallback)
		return fallback
	}
	return n
}

// ratingRange builds the compare range. A bound that was not given comes
// from the dataset.
func ratingRange(o dashboard.Options, lo float64, loSet bool, hi float64, hiSet bool) (*query.RatingRange, error) {
	if !loSet && o.RatingMin != nil {
		lo = *o.RatingMin
	}
	if !hiSet && o.RatingMax != nil {
		hi = *o.RatingMax
	}
	if lo > hi {
		return nil, fmt.Errorf("--rating-min %v is greater than --rating-max %v", lo, hi)
	}
	return &query.RatingRange{Min: lo, Max: hi}, nil
}

// render writes v as JSON when asked to or when w is not a terminal, and
// as text otherwise.
func render[T any](w io.Writer, asJSON bool, v T, text func(io.Writer, T)) error {
	if asJSON || !spinner.IsTerminal(w) {
		return writeJSON(w, v)
	}
	text(w, v)
	return nil
}
