package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestParseColumn(t *testing.T) {
	c, ok := ParseColumn(" rest_type ")
	assert.True(t, ok)
	assert.Equal(t, ColumnType, c)

	_, ok = ParseColumn("url")
	assert.False(t, ok)
}

func TestColumnIsNumeric(t *testing.T) {
	assert.True(t, ColumnCost.IsNumeric())
	assert.True(t, ColumnRating.IsNumeric())
	assert.True(t, ColumnVotes.IsNumeric())
	assert.False(t, ColumnName.IsNumeric())
	assert.False(t, ColumnCuisines.IsNumeric())
}

func TestRestaurantText(t *testing.T) {
	r := Restaurant{
		Name:       "Jalsa",
		Type:       "Casual Dining",
		Location:   "Banashankari",
		Cuisines:   "North Indian, Mughlai, Chinese",
		CostForTwo: ptr(800),
		Rating:     ptr(4.1),
		Votes:      775,
		Extra:      map[string]string{"online_order": "Yes"},
	}

	assert.Equal(t, "Jalsa", r.Text(ColumnName))
	assert.Equal(t, "800", r.Text(ColumnCost))
	assert.Equal(t, "4.1", r.Text(ColumnRating))
	assert.Equal(t, "775", r.Text(ColumnVotes))
	assert.Equal(t, "Yes", r.Text(Column("online_order")))
}

func TestRestaurantNumberMissing(t *testing.T) {
	r := Restaurant{Name: "Cafe X"}

	_, ok := r.Number(ColumnRating)
	assert.False(t, ok)
	_, ok = r.Number(ColumnCost)
	assert.False(t, ok)
	assert.Equal(t, "", r.Text(ColumnRating))

	v, ok := r.Number(ColumnVotes)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestSplitCuisines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "Cafe", []string{"Cafe"}},
		{"trimmed", "North Indian, Chinese", []string{"North Indian", "Chinese"}},
		{"empty parts dropped", "Pizza,, Italian ,", []string{"Pizza", "Italian"}},
		{"repeats kept", "Cafe, Cafe", []string{"Cafe", "Cafe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCuisines(tt.input))
		})
	}
}
