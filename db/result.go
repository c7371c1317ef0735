package db

import (
	"fmt"
	"time"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
)

// Result is the outcome of one executed statement: a QueryResult for reads,
// an ExecResult for writes.
type Result interface {
	Kind() core.StatementKind
	Duration() time.Duration
}

// QueryResult carries the rows fetched by a read statement.
type QueryResult struct {
	Set     core.ResultSet
	Elapsed time.Duration
}

// ExecResult carries the outcome of a write statement.
type ExecResult struct {
	RowsAffected int64
	Elapsed      time.Duration
}

func (result QueryResult) Kind() core.StatementKind {
	return core.ReadStatement
}

func (result ExecResult) Kind() core.StatementKind {
	return core.WriteStatement
}

func (result QueryResult) Duration() time.Duration {
	return result.Elapsed
}

func (result ExecResult) Duration() time.Duration {
	return result.Elapsed
}

// FormatElapsed renders an execution time the way the shell displays it,
// as seconds with millisecond precision.
func FormatElapsed(elapsed time.Duration) string {
	return fmt.Sprintf("%.3fs", elapsed.Seconds())
}
