// Package ranking groups, counts and ranks restaurant records.
package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/foodhub/foodhub/internal/metrics"
	"github.com/foodhub/foodhub/internal/models"
)

// Op is the aggregation applied to each group.
type Op string

const (
	OpMean  Op = "mean"
	OpCount Op = "count"
	OpSum   Op = "sum"
)

// Group is one key of a GroupBy result. Value is nil when the aggregate is
// undefined, e.g. the mean of a group whose values are all missing.
type Group struct {
	Key   string   `json:"key"`
	Value *float64 `json:"value"`
	Count int      `json:"count"`
}

// GroupBy partitions rows by the text of key and aggregates value per group.
// Groups appear in first-seen key order. Rows with an empty key are skipped.
// OpCount ignores value.
func GroupBy(rows []models.Restaurant, key, value models.Column, op Op) ([]Group, error) {
	switch op {
	case OpMean, OpCount, OpSum:
	default:
		return nil, fmt.Errorf("unknown group operation %q", op)
	}
	if op != OpCount && !value.IsNumeric() {
		return nil, fmt.Errorf("%s needs a numeric column, got %q", op, value)
	}

	type acc struct {
		count  int
		values []float64
	}
	index := make(map[string]int)
	var keys []string
	var accs []*acc

	for i := range rows {
		k := rows[i].Text(key)
		if k == "" {
			continue
		}
		j, ok := index[k]
		if !ok {
			j = len(keys)
			index[k] = j
			keys = append(keys, k)
			accs = append(accs, &acc{})
		}
		a := accs[j]
		a.count++
		if op != OpCount {
			if v, ok := rows[i].Number(value); ok {
				a.values = append(a.values, v)
			}
		}
	}

	groups := make([]Group, len(keys))
	for j, k := range keys {
		a := accs[j]
		g := Group{Key: k, Count: a.count}
		switch op {
		case OpCount:
			v := float64(a.count)
			g.Value = &v
		case OpSum:
			sum := 0.0
			for _, v := range a.values {
				sum += v
			}
			g.Value = &sum
		case OpMean:
			if len(a.values) > 0 {
				m := metrics.Mean(a.values)
				g.Value = &m
			}
		}
		groups[j] = g
	}
	return groups, nil
}

// SortOrder is a presentation ordering for groups.
type SortOrder string

const (
	ByKey       SortOrder = "key"
	ByValueDesc SortOrder = "value_desc"
)

// SortGroups returns a sorted copy of groups. Undefined values sort last
// under ByValueDesc; ties keep their original order.
func SortGroups(groups []Group, order SortOrder) []Group {
	out := slices.Clone(groups)
	switch order {
	case ByKey:
		slices.SortStableFunc(out, func(a, b Group) int { return cmp.Compare(a.Key, b.Key) })
	case ByValueDesc:
		slices.SortStableFunc(out, func(a, b Group) int {
			switch {
			case a.Value == nil && b.Value == nil:
				return 0
			case a.Value == nil:
				return 1
			case b.Value == nil:
				return -1
			}
			return cmp.Compare(*b.Value, *a.Value)
		})
	}
	return out
}

// ValueCount is a distinct value and the number of times it occurs.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DistinctWithCounts counts each distinct value, sorted ascending by value.
func DistinctWithCounts(values []string) []ValueCount {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b ValueCount) int { return cmp.Compare(a.Value, b.Value) })
	return out
}

// Distinct returns the values of a column in first-seen order, skipping
// empty values.
func Distinct(rows []models.Restaurant, c models.Column) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range rows {
		v := rows[i].Text(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Column returns the text of a column for every row.
func Column(rows []models.Restaurant, c models.Column) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].Text(c)
	}
	return out
}
