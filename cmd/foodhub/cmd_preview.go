package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/models"
	"github.com/spf13/cobra"
)

func newPreviewCommand(g *globalOptions) *cobra.Command {
	var (
		start  int
		end    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print raw rows of a CSV dataset",
		Long: `Print raw rows of a CSV dataset without decoding them.

Rows are numbered from 1 (the first row after the header). The range is
inclusive and defaults to the first dataset.preview_rows rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			p := cfg.Dataset.Path
			lower := strings.ToLower(p)
			if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".csv.gz") {
				return fmt.Errorf("preview reads local .csv or .csv.gz files, got %q", p)
			}
			if !cmd.Flags().Changed("end") {
				end = cfg.Dataset.PreviewRows
			}

			rows, err := dataset.LoadCSVRange(p, start, end)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), asJSON, rows, printRows)
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "First row to print")
	cmd.Flags().IntVar(&end, "end", 0, "Last row to print (default dataset.preview_rows)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of a table")
	return cmd
}

// printRows writes the required columns of raw rows as a table.
func printRows(w io.Writer, rows []dataset.Row) {
	header := make([]string, len(models.RequiredColumns))
	for i, c := range models.RequiredColumns {
		header[i] = string(c)
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(header))
		for i, h := range header {
			line[i] = r[h]
		}
		cells = append(cells, line)
	}
	printTable(w, header, cells)
}
