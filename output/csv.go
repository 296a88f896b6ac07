// Package output writes ranked rating results to CSV and Google Sheets.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"value-rating/model"
)

// Records renders results as a header row followed by one row per player,
// in the order given.
func Records(results []model.RatingResult) [][]string {
	out := make([][]string, 0, len(results)+1)
	out = append(out, Headers())
	for i := range results {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = formatCell(c.value(&results[i]), c.decimals)
		}
		out = append(out, row)
	}
	return out
}

// WriteCSV writes results in the export layout.
func WriteCSV(w io.Writer, results []model.RatingResult) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(Records(results)); err != nil {
		return fmt.Errorf("failed to write results csv: %w", err)
	}
	return nil
}
