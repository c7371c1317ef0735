package core

// ColumnInfo describes one column of a table as reported by the engine's
// schema introspection.
type ColumnInfo struct {
	Name       string
	Type       string
	Nullable   bool
	Default    string
	PrimaryKey bool
}
