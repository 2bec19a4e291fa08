// Package query filters restaurant records with structured predicates.
//
// Predicates are plain values evaluated by Filter; nothing is compiled into a
// query string. Within an EqualitySet the values are OR-combined; predicates
// passed together to Filter are AND-combined.
package query

import (
	"errors"
	"strings"

	"github.com/foodhub/foodhub/internal/models"
	"github.com/spf13/cast"
)

var (
	// ErrUnknownColumn is returned for a predicate over a column the dataset does not have.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnknownPredicate is returned for a predicate kind Decode does not know.
	ErrUnknownPredicate = errors.New("unknown predicate kind")
	// ErrInvalidPredicate wraps every error DecodeAll returns.
	ErrInvalidPredicate = errors.New("invalid predicate")
)

// Predicate decides whether a single record is kept.
type Predicate interface {
	// Column is the column the predicate inspects.
	Column() models.Column
	Match(r *models.Restaurant) bool
}

// EqualitySet keeps records whose column value equals one of Values.
// Numeric columns compare numerically, so "800" matches a cost of 800.
type EqualitySet struct {
	Col    models.Column
	Values []string

	text map[string]bool
	nums map[float64]bool
}

// NewEqualitySet builds an EqualitySet with its lookup set prepared. A
// literal EqualitySet also works but scans Values on every match.
func NewEqualitySet(col models.Column, values []string) *EqualitySet {
	p := &EqualitySet{Col: col, Values: values}
	p.prepare()
	return p
}

func (p *EqualitySet) prepare() {
	if p.Col.IsNumeric() {
		p.nums = make(map[float64]bool, len(p.Values))
		for _, v := range p.Values {
			if f, ok := parseValue(v); ok {
				p.nums[f] = true
			}
		}
		return
	}
	p.text = make(map[string]bool, len(p.Values))
	for _, v := range p.Values {
		p.text[v] = true
	}
}

func (p *EqualitySet) Column() models.Column { return p.Col }

func (p *EqualitySet) Match(r *models.Restaurant) bool {
	if p.Col.IsNumeric() {
		v, ok := r.Number(p.Col)
		if !ok {
			return false
		}
		if p.nums != nil {
			return p.nums[v]
		}
		for _, s := range p.Values {
			if f, ok := parseValue(s); ok && f == v {
				return true
			}
		}
		return false
	}
	if p.text != nil {
		return p.text[r.Text(p.Col)]
	}
	got := r.Text(p.Col)
	for _, s := range p.Values {
		if s == got {
			return true
		}
	}
	return false
}

func parseValue(s string) (float64, bool) {
	f, err := cast.ToFloat64E(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	return f, err == nil
}

// Range keeps records whose numeric column lies in [Lo, Hi]. Records with a
// missing value never match.
type Range struct {
	Col models.Column
	Lo  float64
	Hi  float64
}

func (p *Range) Column() models.Column { return p.Col }

func (p *Range) Match(r *models.Restaurant) bool {
	v, ok := r.Number(p.Col)
	return ok && v >= p.Lo && v <= p.Hi
}

// CuisineMembership keeps records whose full cuisines string is one of
// Candidates. Build it with NewCuisineMembership.
type CuisineMembership struct {
	Tags       []string
	Candidates map[string]bool
}

// NewCuisineMembership collects every distinct cuisines string in rows that
// contains at least one of tags as a substring.
func NewCuisineMembership(rows []models.Restaurant, tags []string) *CuisineMembership {
	p := &CuisineMembership{Tags: tags, Candidates: make(map[string]bool)}
	for i := range rows {
		c := rows[i].Cuisines
		if p.Candidates[c] {
			continue
		}
		for _, tag := range tags {
			if tag != "" && strings.Contains(c, tag) {
				p.Candidates[c] = true
				break
			}
		}
	}
	return p
}

func (p *CuisineMembership) Column() models.Column { return models.ColumnCuisines }

func (p *CuisineMembership) Match(r *models.Restaurant) bool {
	return p.Candidates[r.Cuisines]
}

// Filter returns the records matching every predicate, in input order. With
// no predicates the input is returned as is. The result may be empty.
func Filter(rows []models.Restaurant, preds ...Predicate) []models.Restaurant {
	if len(preds) == 0 {
		return rows
	}
	out := make([]models.Restaurant, 0, len(rows))
	for i := range rows {
		keep := true
		for _, p := range preds {
			if !p.Match(&rows[i]) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rows[i])
		}
	}
	return out
}
