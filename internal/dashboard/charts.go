package dashboard

import (
	"github.com/foodhub/foodhub/internal/metrics"
	"github.com/foodhub/foodhub/internal/ranking"
)

// ChartConfig describes a chart for the page to draw.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one data series of a chart.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint is a single labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

const (
	compareColor  = "#F67726"
	locationColor = "#F63366"
)

var pieColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// barChart plots groups with a defined value. It returns nil when nothing
// can be drawn.
func barChart(title, xAxis, yAxis, color string, groups []ranking.Group) *ChartConfig {
	points := chartPoints(groups)
	if len(points) == 0 {
		return nil
	}
	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     yAxis,
		Series:    []ChartSeries{{Name: yAxis, Data: points}},
		Colors:    []string{color},
	}
}

func pieChart(title, name string, groups []ranking.Group) *ChartConfig {
	points := chartPoints(groups)
	if len(points) == 0 {
		return nil
	}
	colors := make([]string, len(points))
	for i := range colors {
		colors[i] = pieColors[i%len(pieColors)]
	}
	return &ChartConfig{
		ChartType:  "pie",
		Title:      title,
		Series:     []ChartSeries{{Name: name, Data: points}},
		Colors:     colors,
		ShowLegend: true,
	}
}

func chartPoints(groups []ranking.Group) []ChartPoint {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		if g.Value == nil {
			continue
		}
		points = append(points, ChartPoint{Label: g.Key, Value: metrics.Round1(*g.Value)})
	}
	return points
}
