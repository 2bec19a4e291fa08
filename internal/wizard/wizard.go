// Package wizard runs the interactive filter form behind "foodhub explore".
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/query"
	"github.com/foodhub/foodhub/internal/ranking"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels the form.
var ErrAborted = errors.New("explore cancelled")

// Answers holds the raw values collected by the form.
type Answers struct {
	Names     []string
	Types     []string
	Cuisines  []string
	Locations []string
	Costs     []string
	Compare   []string
	RatingMin string
	RatingMax string
	TopN      string
}

// Request converts the answers into a dashboard request. Blank rating
// bounds and a blank top-N leave the service defaults in place.
func (a Answers) Request(defaultTopN int) (dashboard.Request, error) {
	req := dashboard.Request{
		Names:     a.Names,
		Types:     a.Types,
		Cuisines:  a.Cuisines,
		Locations: a.Locations,
		Costs:     a.Costs,
		Compare:   a.Compare,
	}

	lo, hi := strings.TrimSpace(a.RatingMin), strings.TrimSpace(a.RatingMax)
	if lo != "" || hi != "" {
		if lo == "" || hi == "" {
			return dashboard.Request{}, errors.New("rating range needs both a minimum and a maximum")
		}
		loV, err := parseRating(lo)
		if err != nil {
			return dashboard.Request{}, err
		}
		hiV, err := parseRating(hi)
		if err != nil {
			return dashboard.Request{}, err
		}
		if loV > hiV {
			return dashboard.Request{}, fmt.Errorf("rating minimum %.1f is above maximum %.1f", loV, hiV)
		}
		req.Rating = &query.RatingRange{Min: loV, Max: hiV}
	}

	n, err := ranking.ParseTopN(a.TopN, defaultTopN)
	if err != nil {
		return dashboard.Request{}, err
	}
	req.TopN = n
	return req, nil
}

// RunExploreWizard asks for the dashboard filters using the choices in opts
// and returns the resulting request.
func RunExploreWizard(in io.Reader, out io.Writer, opts dashboard.Options, defaultTopN int) (*dashboard.Request, error) {
	var a Answers
	form := buildForm(&a, opts, defaultTopN).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("explore form failed: %w", err)
	}

	req, err := a.Request(defaultTopN)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func buildForm(a *Answers, opts dashboard.Options, defaultTopN int) *huh.Form {
	if opts.RatingMin != nil {
		a.RatingMin = strconv.FormatFloat(*opts.RatingMin, 'f', 1, 64)
	}
	if opts.RatingMax != nil {
		a.RatingMax = strconv.FormatFloat(*opts.RatingMax, 'f', 1, 64)
	}
	a.TopN = strconv.Itoa(defaultTopN)

	return huh.NewForm(
		huh.NewGroup(
			multiSelect("Restaurant name", opts.Names, &a.Names),
			multiSelect("Restaurant type", opts.Types, &a.Types),
			multiSelect("Cuisine type", opts.Cuisines, &a.Cuisines),
		).Title("Apply Filters"),
		huh.NewGroup(
			multiSelect("Location", opts.Locations, &a.Locations),
			multiSelect("Cost for two", opts.Costs, &a.Costs),
		),
		huh.NewGroup(
			multiSelect("Restaurants to compare", opts.Names, &a.Compare),
			huh.NewInput().
				Title("Minimum rating").
				Value(&a.RatingMin).
				Validate(validateRating),
			huh.NewInput().
				Title("Maximum rating").
				Value(&a.RatingMax).
				Validate(validateRating),
		).Title("Compare Restaurants"),
		huh.NewGroup(
			huh.NewInput().
				Title("How many top restaurants (based on votes) would you like to see?").
				Value(&a.TopN).
				Validate(func(s string) error {
					_, err := ranking.ParseTopN(s, defaultTopN)
					return err
				}),
		),
	)
}

func multiSelect(title string, choices []string, value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title(title).
		Description("Leave empty for no constraint").
		Options(huh.NewOptions(choices...)...).
		Filterable(true).
		Height(10).
		Value(value)
}

func validateRating(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseRating(s)
	return err
}

func parseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q is not a number", s)
	}
	if v < 0 || v > 5 {
		return 0, fmt.Errorf("rating %.1f is outside 0-5", v)
	}
	return v, nil
}
