package query

import (
	"fmt"

	"github.com/foodhub/foodhub/internal/models"
	"github.com/go-viper/mapstructure/v2"
)

// Predicate kinds accepted by Decode.
const (
	KindEquals   = "equals"
	KindRange    = "range"
	KindCuisines = "cuisines"
)

// PredicateSpec is the serialized form of a predicate, as received from the
// HTTP API. Params depend on Kind:
//
//	equals:   {"values": ["BTM", "Jayanagar"]}
//	range:    {"min": 3.5, "max": 4.5}
//	cuisines: {"tags": ["Chinese"]}
type PredicateSpec struct {
	Kind   string         `json:"kind"`
	Column string         `json:"column,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type equalsParams struct {
	Values []string `mapstructure:"values"`
}

type rangeParams struct {
	Min *float64 `mapstructure:"min"`
	Max *float64 `mapstructure:"max"`
}

type cuisinesParams struct {
	Tags []string `mapstructure:"tags"`
}

// Decode turns a spec into a Predicate. rows is only consulted by the
// cuisines kind, which derives its candidate set from the table.
func Decode(spec PredicateSpec, rows []models.Restaurant) (Predicate, error) {
	switch spec.Kind {
	case KindEquals:
		col, err := parseColumn(spec.Column)
		if err != nil {
			return nil, err
		}
		var p equalsParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		if col == models.ColumnCuisines {
			return NewCuisineMembership(rows, p.Values), nil
		}
		return NewEqualitySet(col, p.Values), nil

	case KindRange:
		col, err := parseColumn(spec.Column)
		if err != nil {
			return nil, err
		}
		if !col.IsNumeric() {
			return nil, fmt.Errorf("range predicate needs a numeric column, got %q", col)
		}
		var p rangeParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		if p.Min == nil || p.Max == nil {
			return nil, fmt.Errorf("range predicate on %q needs both min and max", col)
		}
		if *p.Min > *p.Max {
			return nil, fmt.Errorf("range predicate on %q: min %v is greater than max %v", col, *p.Min, *p.Max)
		}
		return &Range{Col: col, Lo: *p.Min, Hi: *p.Max}, nil

	case KindCuisines:
		var p cuisinesParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return NewCuisineMembership(rows, p.Tags), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, spec.Kind)
	}
}

// DecodeAll decodes every spec, stopping at the first error.
func DecodeAll(specs []PredicateSpec, rows []models.Restaurant) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(specs))
	for i, spec := range specs {
		p, err := Decode(spec, rows)
		if err != nil {
			return nil, fmt.Errorf("%w: predicate %d: %w", ErrInvalidPredicate, i, err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func parseColumn(name string) (models.Column, error) {
	col, ok := models.ParseColumn(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return col, nil
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating params decoder: %w", err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}
