// Package render formats result sets as fixed-width text tables.
//
// PagedTable is the terminal renderer: column widths are sized from the
// first page of rows, capped at MaxColumnWidth, and oversized values are
// truncated. A Pager callback decides between pages whether to continue.
//
// Table renders the complete set in one piece with no caps, which is what
// text exports and schema listings use.
package render
