package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/foodhub/foodhub/internal/models"
)

// ErrInvalidTopN is returned when a requested top-N count is not a positive integer.
var ErrInvalidTopN = errors.New("top-N must be a positive integer")

// TopN returns the first n rows in their current order. It does not sort;
// use SortByVotes first for a ranking. n larger than len(rows) returns all
// rows; n <= 0 returns none. The result is a copy.
func TopN(rows []models.Restaurant, n int) []models.Restaurant {
	if n <= 0 {
		return []models.Restaurant{}
	}
	if n > len(rows) {
		n = len(rows)
	}
	return slices.Clone(rows[:n])
}

// SortByVotes returns a copy of rows ordered by votes, most first. Rows with
// equal votes keep their relative order.
func SortByVotes(rows []models.Restaurant) []models.Restaurant {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.Restaurant) int { return cmp.Compare(b.Votes, a.Votes) })
	return out
}

// ParseTopN parses a user-entered count. Blank input yields fallback.
func ParseTopN(text string, fallback int) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTopN, text)
	}
	return n, nil
}
