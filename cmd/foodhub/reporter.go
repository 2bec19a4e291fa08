package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/foodhub/foodhub/internal/ranking"
	"github.com/mattn/go-runewidth"
)

const maxNameWidth = 40

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDashboard renders every panel as plain text tables.
func printDashboard(w io.Writer, d *dashboard.Dashboard) {
	printDetails(w, d.Details)
	printCompare(w, d.Compare)
	printTypeLocations(w, d.TypeLocation)
	printCuisines(w, d.Cuisines)
	printTop(w, d.Top)
	printLocationCost(w, d.LocationCost)
}

func printDetails(w io.Writer, details []dashboard.RestaurantDetail) {
	heading(w, "Restaurant Details")
	if len(details) == 0 {
		fmt.Fprintln(w, "  (no restaurant selected)") //nolint:errcheck
		return
	}
	for _, r := range details {
		cost := "-"
		if r.CostForTwo != nil {
			cost = strconv.Itoa(*r.CostForTwo)
		}
		fmt.Fprintf(w, "  %s\n", r.Name)                                                       //nolint:errcheck
		fmt.Fprintf(w, "    Cuisines:       %s\n", orDash(strings.Join(r.Cuisines, ", ")))     //nolint:errcheck
		fmt.Fprintf(w, "    Cost for two:   %s\n", cost)                                       //nolint:errcheck
		fmt.Fprintf(w, "    Average Rating: %s %s\n", formatValue(r.MeanRating), r.StarGlyphs) //nolint:errcheck
	}
}

func printCompare(w io.Writer, p dashboard.ComparePanel) {
	heading(w, "Compare Restaurants (based on ratings)")
	fmt.Fprintf(w, "  Rating range: %s - %s\n", models.FormatNumber(p.Rating.Min), models.FormatNumber(p.Rating.Max)) //nolint:errcheck
	fmt.Fprintf(w, "  Available Results: %d\n", p.Count)                                                              //nolint:errcheck
	printGroups(w, "Restaurant", "Rating", p.Groups)
}

func printTypeLocations(w io.Writer, p dashboard.TypeLocationPanel) {
	heading(w, "Famous locations for specific restaurant type")
	if len(p.Types) == 0 {
		fmt.Fprintln(w, "  (no restaurant type selected)") //nolint:errcheck
		return
	}
	fmt.Fprintf(w, "  Total locations available for selected restaurant type: %d\n", p.Count) //nolint:errcheck
	printGroups(w, "Location", "Restaurants", p.Groups)
}

func printCuisines(w io.Writer, p dashboard.CuisinePanel) {
	heading(w, "List of Restaurants having the selected cuisine type")
	if len(p.Tags) == 0 {
		fmt.Fprintln(w, "  (no cuisine selected)") //nolint:errcheck
		return
	}
	if len(p.Restaurants) == 0 {
		fmt.Fprintln(w, "  (none)") //nolint:errcheck
		return
	}
	for _, name := range p.Restaurants {
		fmt.Fprintf(w, "  - %s\n", name) //nolint:errcheck
	}
}

func printTop(w io.Writer, p dashboard.TopPanel) {
	heading(w, fmt.Sprintf("Top %d Restaurants based on votes", p.N))
	header := []string{"#", "Restaurant", "Location", "Votes"}
	rows := make([][]string, 0, len(p.Rows))
	for i := range p.Rows {
		r := &p.Rows[i]
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Name, r.Location, strconv.Itoa(r.Votes)})
	}
	printTable(w, header, rows)
}

func printLocationCost(w io.Writer, p dashboard.LocationCostPanel) {
	heading(w, "List of Restaurants based on location and cost for two people")
	fmt.Fprintf(w, "  Average Cost:   %s\n", formatValue(p.MeanCost))                    //nolint:errcheck
	fmt.Fprintf(w, "  Average rating: %s %s\n", formatValue(p.MeanRating), p.StarGlyphs) //nolint:errcheck
	rows := make([][]string, 0, len(p.Restaurants))
	for _, vc := range p.Restaurants {
		rows = append(rows, []string{vc.Value, strconv.Itoa(vc.Count)})
	}
	printTable(w, []string{"Restaurant", "Rows"}, rows)
}

// printOptions lists the values each filter offers.
func printOptions(w io.Writer, o dashboard.Options) {
	fmt.Fprintf(w, "Rows: %d\n", o.Rows)                                                    //nolint:errcheck
	fmt.Fprintf(w, "Rating: %s - %s\n", formatValue(o.RatingMin), formatValue(o.RatingMax)) //nolint:errcheck
	lists := []struct {
		title  string
		values []string
	}{
		{"Restaurant names", o.Names},
		{"Restaurant types", o.Types},
		{"Cuisines", o.Cuisines},
		{"Locations", o.Locations},
		{"Costs for two", o.Costs},
	}
	for _, l := range lists {
		heading(w, fmt.Sprintf("%s (%d)", l.title, len(l.values)))
		for _, v := range l.values {
			fmt.Fprintf(w, "  %s\n", v) //nolint:errcheck
		}
	}
}

func printGroups(w io.Writer, keyTitle, valueTitle string, groups []ranking.Group) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Key, formatValue(g.Value)})
	}
	printTable(w, []string{keyTitle, valueTitle}, rows)
}

// printTable writes an indented table whose columns are aligned by display
// width. Long cells are truncated.
func printTable(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			row[i] = truncateName(cell, maxNameWidth)
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = padRight(c, widths[i])
		}
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(padded, "  "), " ")) //nolint:errcheck
	}

	writeRow(header)
	rules := make([]string, len(header))
	for i := range header {
		rules[i] = strings.Repeat("-", widths[i])
	}
	writeRow(rules)
	for _, row := range rows {
		writeRow(row)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title) //nolint:errcheck
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return models.FormatNumber(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateName shortens s to maxWidth display columns, ending in "…".
func truncateName(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
