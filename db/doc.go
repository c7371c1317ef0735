// Package db provides the SQL execution engine for sqlcli.
//
// The Engine type is the main entry point for executing SQL statements.
// It opens an embedded database file through database/sql, runs statements,
// and returns results with every value already stringified.
//
// # Engine Usage
//
//	engine, err := db.Open("app.db", db.SQLite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	result, err := engine.Execute("SELECT * FROM users")
//
// # Result Types
//
// There are two result types:
//   - QueryResult: Returned by SELECT statements
//   - ExecResult: Returned by INSERT, UPDATE, DELETE, CREATE, DROP
//
// QueryResult carries the fetched rows as a core.ResultSet; ExecResult
// carries the affected row count. Both record execution time.
//
// # Dialects
//
// A Dialect bundles the driver name with the introspection SQL an engine
// understands. SQLite (modernc.org/sqlite) is the default; DuckDB files are
// recognized by extension.
package db
