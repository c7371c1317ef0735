package sqlcli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	log "github.com/sirupsen/logrus"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
	"github.com/rudrasatani13/Sqlite-cli-tool/db"
	"github.com/rudrasatani13/Sqlite-cli-tool/export"
	"github.com/rudrasatani13/Sqlite-cli-tool/render"
)

// DefaultPageSize is the number of rows shown per page until changed with
// the pagesize command.
const DefaultPageSize = 20

var (
	// ErrNotConnected is returned by commands that need an open database.
	ErrNotConnected = errors.New("no database connection; use 'connect <database>' first")
	// ErrNoResults is returned by save before any SELECT has fetched rows.
	ErrNoResults = errors.New("no results to save; execute a SELECT query first")
)

var (
	promptColor  = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// Shell is one interactive session: a single database connection, the query
// history, the last fetched result set, and display settings. It is not
// safe for concurrent use; every command runs on the caller's goroutine.
type Shell struct {
	engine   *db.Engine
	history  []HistoryEntry
	last     core.ResultSet
	pageSize int

	out      io.Writer
	pager    render.Pager
	exporter *export.Exporter
	dialect  string
	format   string
}

// Options configures a Shell. Zero values mean stdout, no paging pauses,
// DefaultPageSize, the sqlite dialect, csv exports, and the process working
// directory for export files.
type Options struct {
	// Out receives all command output.
	Out io.Writer

	// Pager is consulted between result pages.
	Pager render.Pager

	// PageSize is the initial rows-per-page setting.
	PageSize int

	// Dialect is the engine dialect for paths whose extension decides
	// nothing, usually "sqlite" or "duckdb".
	Dialect string

	// ExportFormat is the format used when save is called without one.
	ExportFormat string

	// Filesystem is where local export files and scripts live.
	Filesystem billy.Filesystem

	// S3 configures s3:// export destinations.
	S3 export.S3Config
}

// New creates a Shell with no connection. Commands are fed through Dispatch.
func New(options Options) *Shell {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Pager == nil {
		options.Pager = render.ContinueAll
	}
	if options.PageSize < 1 {
		options.PageSize = DefaultPageSize
	}
	if options.Dialect == "" {
		options.Dialect = db.SQLite.Name
	}
	if options.ExportFormat == "" {
		options.ExportFormat = export.FormatCSV
	}
	if options.Filesystem == nil {
		options.Filesystem = osfs.New(".")
	}

	return &Shell{
		pageSize: options.PageSize,
		out:      options.Out,
		pager:    options.Pager,
		exporter: export.New(options.Filesystem, options.S3),
		dialect:  options.Dialect,
		format:   options.ExportFormat,
	}
}

// Connected reports whether a database is open.
func (shell *Shell) Connected() bool {
	return shell.engine != nil
}

// DatabasePath returns the connected database path, or "" when disconnected.
func (shell *Shell) DatabasePath() string {
	if shell.engine == nil {
		return ""
	}
	return shell.engine.Path()
}

// PageSize returns the current rows-per-page setting.
func (shell *Shell) PageSize() int {
	return shell.pageSize
}

// History returns a copy of the query history, oldest first.
func (shell *Shell) History() []HistoryEntry {
	history := make([]HistoryEntry, len(shell.history))
	copy(history, shell.history)
	return history
}

// LastResults returns the result set of the most recent successful SELECT.
func (shell *Shell) LastResults() core.ResultSet {
	return shell.last
}

// Quit closes any open connection and prints the farewell message.
func (shell *Shell) Quit() {
	if shell.engine != nil {
		shell.engine.Close()
		shell.engine = nil
		fmt.Fprintln(shell.out, "Database connection closed.")
	}
	successColor.Fprintln(shell.out, "Goodbye!")
}

// Close releases the open connection without printing anything. It is safe
// to call after Quit.
func (shell *Shell) Close() error {
	if shell.engine == nil {
		return nil
	}
	err := shell.engine.Close()
	shell.engine = nil
	return err
}

// dialectFor resolves the dialect for a database path: the file extension
// wins, then the configured default.
func (shell *Shell) dialectFor(path string) db.Dialect {
	dialect := db.DialectFor(path)
	if dialect.Name == db.SQLite.Name {
		if configured, ok := db.DialectByName(shell.dialect); ok {
			return configured
		}
	}
	return dialect
}

// connect opens path, replacing any existing connection. The old connection
// is closed first, so a failed open leaves the shell disconnected.
func (shell *Shell) connect(path string) error {
	if shell.engine != nil {
		shell.engine.Close()
		shell.engine = nil
		fmt.Fprintln(shell.out, "Closed previous connection")
	}

	dialect := shell.dialectFor(path)
	engine, err := db.Open(path, dialect)
	if err != nil {
		return err
	}
	shell.engine = engine

	successColor.Fprintf(shell.out, "✓ Connected to: %s\n", path)
	fmt.Fprintf(shell.out, "%s version: %s\n", dialect.Name, engine.Version())
	return shell.printTables()
}

// execute runs one statement through the engine, records it in history on
// success, and renders the outcome.
func (shell *Shell) execute(statement string) error {
	result, err := shell.engine.Execute(statement)
	if err != nil {
		return fmt.Errorf("SQL error: %w", err)
	}
	shell.record(statement, result)

	switch result := result.(type) {
	case db.QueryResult:
		shell.last = result.Set
		shell.showResults(result)
	case db.ExecResult:
		successColor.Fprintln(shell.out, "✓ Query executed successfully")
		fmt.Fprintf(shell.out, "Rows affected: %d\n", result.RowsAffected)
		fmt.Fprintf(shell.out, "Execution time: %s\n", db.FormatElapsed(result.Elapsed))
	}
	return nil
}

// showResults renders a fetched set as a paginated table.
func (shell *Shell) showResults(result db.QueryResult) {
	if result.Set.Empty() {
		fmt.Fprintln(shell.out, "No results found")
		fmt.Fprintf(shell.out, "Execution time: %s\n", db.FormatElapsed(result.Elapsed))
		return
	}

	fmt.Fprintf(shell.out, "\nQuery results (%d rows)\n", result.Set.Len())
	fmt.Fprintf(shell.out, "Execution time: %s\n", db.FormatElapsed(result.Elapsed))
	fmt.Fprintln(shell.out)
	render.PagedTable(shell.out, result.Set, shell.pageSize, shell.pager)
}

// printTables lists the tables of the connected database.
func (shell *Shell) printTables() error {
	tables, err := shell.engine.Tables()
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	if len(tables) == 0 {
		fmt.Fprintln(shell.out, "No tables found in database")
		return nil
	}

	fmt.Fprintf(shell.out, "Available tables (%d):\n", len(tables))
	for _, name := range tables {
		fmt.Fprintf(shell.out, "  %s\n", name)
	}
	return nil
}

// record appends a history entry for a successfully executed statement.
func (shell *Shell) record(statement string, result db.Result) {
	entry := HistoryEntry{
		Query:   statement,
		At:      now(),
		Elapsed: result.Duration(),
		Kind:    result.Kind(),
	}
	switch result := result.(type) {
	case db.QueryResult:
		entry.Rows = int64(result.Set.Len())
	case db.ExecResult:
		entry.Rows = result.RowsAffected
	}
	shell.history = append(shell.history, entry)

	log.WithFields(log.Fields{
		"kind": entry.Kind,
		"rows": entry.Rows,
	}).Debug("Recorded statement")
}
