package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
)

// MaxColumnWidth caps terminal column widths. Values longer than their
// column width are truncated, never wrapped.
const MaxColumnWidth = 30

// Pager is consulted between pages. shown is the number of rows rendered so
// far, total the full row count; returning false stops rendering.
type Pager func(shown, total int) bool

// ContinueAll is a Pager that renders every page without pausing.
func ContinueAll(shown, total int) bool {
	return true
}

// PagedTable writes the set one page at a time. Column widths come from the
// header and the first page of rows, capped at MaxColumnWidth, and stay
// fixed for the whole set. Each page repeats the header, and sets larger
// than one page get a "Showing rows X-Y of N" line.
func PagedTable(w io.Writer, set core.ResultSet, pageSize int, pager Pager) {
	if len(set.Columns) == 0 || set.Empty() {
		return
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pager == nil {
		pager = ContinueAll
	}

	widths := columnWidths(set, pageSize, true)
	header := formatRow(set.Columns, widths, true)
	separator := strings.Repeat("-", len(header))
	total := set.Len()

	for start := 0; start < total; start += pageSize {
		end := start + pageSize
		if end > total {
			end = total
		}

		fmt.Fprintln(w, header)
		fmt.Fprintln(w, separator)
		for _, row := range set.Rows[start:end] {
			fmt.Fprintln(w, formatRow(row, widths, true))
		}
		if total > pageSize {
			fmt.Fprintf(w, "\nShowing rows %d-%d of %d\n", start+1, end, total)
		}

		if end < total && !pager(end, total) {
			return
		}
	}
}

// Table writes the whole set as one table without pagination, width caps,
// or truncation.
func Table(w io.Writer, set core.ResultSet) {
	if len(set.Columns) == 0 {
		return
	}

	widths := columnWidths(set, 0, false)
	header := formatRow(set.Columns, widths, false)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, row := range set.Rows {
		fmt.Fprintln(w, formatRow(row, widths, false))
	}
}

// columnWidths determines the width of each column: the larger of the header
// and the widest value among the first sample rows (0 means all rows).
func columnWidths(set core.ResultSet, sample int, capped bool) []int {
	widths := make([]int, len(set.Columns))
	for i, column := range set.Columns {
		widths[i] = len(column)
	}

	rows := set.Rows
	if sample > 0 && sample < len(rows) {
		rows = rows[:sample]
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if capped {
		for i := range widths {
			if widths[i] > MaxColumnWidth {
				widths[i] = MaxColumnWidth
			}
		}
	}
	return widths
}

// formatRow renders one row left-aligned and pipe-separated.
func formatRow(row []string, widths []int, truncate bool) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if truncate && len(cell) > width {
			cell = cell[:width]
		}
		if padding := width - len(cell); padding > 0 {
			cell += strings.Repeat(" ", padding)
		}
		parts[i] = cell
	}
	return strings.Join(parts, " | ")
}
