// Package core provides core types used throughout sqlcli.
//
// The package defines the fundamental result and schema types shared by the
// engine, the renderer, and the exporters.
//
// # Result Sets
//
// ResultSet is the ordered form of a fetched query result. Column order is
// the engine's column order, and every cell is already stringified:
//
//	set := core.ResultSet{
//	    Columns: []string{"id", "name"},
//	    Rows: [][]string{
//	        {"1", "Alice"},
//	        {"2", "Bob"},
//	    },
//	}
//
// # Statement Kinds
//
// Executed statements are classified as one of:
//   - ReadStatement: fetches rows (SELECT)
//   - WriteStatement: mutates data (INSERT, UPDATE, DELETE, DDL)
//
// # Schema Introspection
//
// ColumnInfo carries one column of a described table:
//
//	column := core.ColumnInfo{
//	    Name:       "id",
//	    Type:       "INTEGER",
//	    PrimaryKey: true,
//	}
package core
