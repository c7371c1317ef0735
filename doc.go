// Package sqlcli provides an interactive shell for embedded SQL databases.
//
// A Shell holds one database connection, an in-memory history of executed
// statements, and the most recent result set, which stays exportable until
// the next SELECT replaces it. Input lines go through Dispatch, which routes
// them to a fixed command registry.
//
// # Quick Start
//
// Drive a session programmatically:
//
//	shell := sqlcli.New(sqlcli.Options{})
//	shell.Dispatch("connect app.db")
//	shell.Dispatch("query CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
//	shell.Dispatch("query INSERT INTO users (name) VALUES ('Alice')")
//	shell.Dispatch("query SELECT * FROM users")
//	shell.Dispatch("save users.csv csv")
//	shell.Dispatch("exit")
//
// # Commands
//
// The shell understands:
//   - connect <path>: open a database file, creating it if missing
//   - query <sql>: execute one statement
//   - save <file> [csv|json|txt]: export the last results
//   - history [limit]: show executed statements
//   - tables, describe <table>: schema introspection
//   - pagesize [n], clear, status, help, run <script>
//   - exit, quit
//
// Results render as fixed-width paginated tables; exports may target local
// paths or s3:// URLs. SQLite files are the default; .duckdb files open
// with the DuckDB engine.
package sqlcli
