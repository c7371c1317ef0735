package core

// StatementKind classifies an executed SQL statement.
type StatementKind int

const (
	// ReadStatement fetches rows (case-insensitive SELECT prefix).
	ReadStatement StatementKind = iota
	// WriteStatement mutates data and reports rows affected.
	WriteStatement
)

// ResultSet holds the rows fetched by one read statement. Columns preserves
// the engine's column order; every value is stringified at capture time, so
// a NULL is the empty string and numbers carry their display form.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows in the set.
func (set ResultSet) Len() int {
	return len(set.Rows)
}

// Empty reports whether the set holds no rows.
func (set ResultSet) Empty() bool {
	return len(set.Rows) == 0
}

// Index returns the position of the named column, or -1 if absent.
func (set ResultSet) Index(column string) int {
	for i, name := range set.Columns {
		if name == column {
			return i
		}
	}
	return -1
}

// Value returns the named column of one row, or "" when the row or column
// is out of range.
func (set ResultSet) Value(row int, column string) string {
	i := set.Index(column)
	if i < 0 || row < 0 || row >= len(set.Rows) || i >= len(set.Rows[row]) {
		return ""
	}
	return set.Rows[row][i]
}
