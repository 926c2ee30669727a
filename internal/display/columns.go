package display

import "fmt"

const defaultColumnRows = 5

// Columns lays entries out in as many columns as fit in DefaultWidth,
// filling each column top to bottom before moving right.
func Columns(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}

	colWidth := 1
	for _, e := range entries {
		// Two spaces of gutter between columns
		if l := len(e) + 2; l > colWidth {
			colWidth = l
		}
	}

	numCols := DefaultWidth / colWidth
	if numCols < 1 {
		numCols = 1
	}
	numRows := (len(entries) + numCols - 1) / numCols
	if numRows < defaultColumnRows {
		numRows = min(defaultColumnRows, len(entries))
	}

	rows := make([]string, numRows)
	for i, e := range entries {
		rows[i%numRows] += fmt.Sprintf("%-*s", colWidth, e)
	}

	return rows
}
