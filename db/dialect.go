package db

import (
	"path/filepath"
	"strings"
)

// Dialect carries the driver name and the introspection SQL that differs
// between embedded engines. Statement execution itself goes through
// database/sql unchanged.
type Dialect struct {
	// Name identifies the dialect in status output and configuration.
	Name string

	// Driver is the database/sql driver name to open.
	Driver string

	// VersionQuery returns a single row with the engine version.
	VersionQuery string

	// TablesQuery returns one table name per row, sorted.
	TablesQuery string

	// DescribeQuery is a format string receiving the quoted table name and
	// returning table_info rows (cid, name, type, notnull, dflt_value, pk).
	DescribeQuery string
}

var (
	// SQLite is the default dialect, served by the CGO-free modernc driver.
	SQLite = Dialect{
		Name:          "sqlite",
		Driver:        "sqlite",
		VersionQuery:  "SELECT sqlite_version()",
		TablesQuery:   "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name",
		DescribeQuery: "PRAGMA table_info(%s)",
	}

	// DuckDB serves analytical database files. Its table_info pragma reports
	// booleans where SQLite reports 0/1; the engine normalizes both.
	DuckDB = Dialect{
		Name:          "duckdb",
		Driver:        "duckdb",
		VersionQuery:  "SELECT version()",
		TablesQuery:   "SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name",
		DescribeQuery: "PRAGMA table_info(%s)",
	}
)

// DialectFor picks a dialect for a database path by extension. DuckDB files
// (.duckdb, .ddb) get the DuckDB dialect; everything else, including
// :memory:, gets SQLite.
func DialectFor(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".ddb":
		return DuckDB
	default:
		return SQLite
	}
}

// DialectByName resolves a configured dialect name. The empty string means
// the default SQLite dialect.
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return SQLite, true
	case "duckdb":
		return DuckDB, true
	}
	return Dialect{}, false
}

// quoteLiteral wraps a name as a single-quoted SQL string, doubling any
// embedded quotes. Both engines accept the string form in pragma calls.
func quoteLiteral(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
