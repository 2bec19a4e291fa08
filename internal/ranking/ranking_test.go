package ranking

import (
	"testing"

	"github.com/foodhub/foodhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestGroupBy_Mean(t *testing.T) {
	rows := []models.Restaurant{
		{Name: "A", Rating: fp(4)},
		{Name: "B", Rating: fp(3)},
		{Name: "A", Rating: fp(5)},
		{Name: "C", Rating: nil},
		{Name: "A", Rating: nil},
	}

	groups, err := GroupBy(rows, models.ColumnName, models.ColumnRating, OpMean)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "A", groups[0].Key)
	require.NotNil(t, groups[0].Value)
	assert.InDelta(t, 4.5, *groups[0].Value, 1e-9)
	assert.Equal(t, 3, groups[0].Count)

	assert.Equal(t, "B", groups[1].Key)
	assert.InDelta(t, 3.0, *groups[1].Value, 1e-9)

	assert.Equal(t, "C", groups[2].Key)
	assert.Nil(t, groups[2].Value, "all-missing group has no mean")
}

func TestGroupBy_CountAndSum(t *testing.T) {
	rows := []models.Restaurant{
		{Name: "Jalsa", Location: "Banashankari", Votes: 775},
		{Name: "Cafe X", Location: "BTM", Votes: 12},
		{Name: "Spice Elephant", Location: "Banashankari", Votes: 787},
		{Name: "Nameless", Location: "", Votes: 3},
	}

	counts, err := GroupBy(rows, models.ColumnLocation, "", OpCount)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Banashankari", counts[0].Key)
	assert.InDelta(t, 2, *counts[0].Value, 1e-9)
	assert.Equal(t, "BTM", counts[1].Key)
	assert.InDelta(t, 1, *counts[1].Value, 1e-9)

	sums, err := GroupBy(rows, models.ColumnLocation, models.ColumnVotes, OpSum)
	require.NoError(t, err)
	assert.InDelta(t, 1562, *sums[0].Value, 1e-9)
}

func TestGroupBy_Errors(t *testing.T) {
	_, err := GroupBy(nil, models.ColumnName, models.ColumnRating, "median")
	require.Error(t, err)

	_, err = GroupBy(nil, models.ColumnName, models.ColumnLocation, OpMean)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric column")
}

func TestGroupBy_Empty(t *testing.T) {
	groups, err := GroupBy(nil, models.ColumnName, models.ColumnRating, OpMean)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSortGroups(t *testing.T) {
	groups := []Group{
		{Key: "b", Value: fp(1)},
		{Key: "c", Value: nil},
		{Key: "a", Value: fp(3)},
	}

	byValue := SortGroups(groups, ByValueDesc)
	assert.Equal(t, []string{"a", "b", "c"}, keys(byValue))

	byKey := SortGroups(groups, ByKey)
	assert.Equal(t, []string{"a", "b", "c"}, keys(byKey))

	assert.Equal(t, "b", groups[0].Key, "input is not modified")
}

func keys(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestDistinctWithCounts(t *testing.T) {
	got := DistinctWithCounts([]string{"Jalsa", "Cafe X", "Jalsa", "Addhuri", "Cafe X", "Jalsa"})
	assert.Equal(t, []ValueCount{
		{Value: "Addhuri", Count: 1},
		{Value: "Cafe X", Count: 2},
		{Value: "Jalsa", Count: 3},
	}, got)

	assert.Empty(t, DistinctWithCounts(nil))
}

func TestDistinct(t *testing.T) {
	rows := []models.Restaurant{{Type: "Cafe"}, {Type: ""}, {Type: "Bar"}, {Type: "Cafe"}}
	assert.Equal(t, []string{"Cafe", "Bar"}, Distinct(rows, models.ColumnType))
}

func TestTopN_IsPositional(t *testing.T) {
	rows := []models.Restaurant{
		{Name: "r1", Votes: 1},
		{Name: "r2", Votes: 500},
		{Name: "r3", Votes: 2},
		{Name: "r4", Votes: 900},
		{Name: "r5", Votes: 3},
	}

	top := TopN(rows, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "r1", top[0].Name)
	assert.Equal(t, "r2", top[1].Name)
	assert.Equal(t, "r3", top[2].Name)

	top[0].Name = "changed"
	assert.Equal(t, "r1", rows[0].Name, "TopN returns a copy")
}

func TestTopN_Bounds(t *testing.T) {
	rows := []models.Restaurant{{Name: "a"}, {Name: "b"}}
	assert.Len(t, TopN(rows, 10), 2)
	assert.Empty(t, TopN(rows, 0))
	assert.Empty(t, TopN(nil, 3))
}

func TestSortByVotes(t *testing.T) {
	rows := []models.Restaurant{
		{Name: "r1", Votes: 1},
		{Name: "r2", Votes: 500},
		{Name: "r3", Votes: 500},
		{Name: "r4", Votes: 900},
	}
	sorted := SortByVotes(rows)
	assert.Equal(t, []string{"r4", "r2", "r3", "r1"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name, sorted[3].Name})
	assert.Equal(t, "r1", rows[0].Name)
}

func TestParseTopN(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "3", want: 3},
		{in: " 10 ", want: 10},
		{in: "", want: 5},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "three", wantErr: true},
		{in: "2.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTopN(tt.in, 5)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTopN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
