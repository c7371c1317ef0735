package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned when a method is called on a closed engine.
var ErrClosed = errors.New("database engine is closed")

// Engine wraps one open embedded database handle together with the dialect
// used to introspect it.
type Engine struct {
	db      *sql.DB
	dialect Dialect
	path    string
	version string
}

// Open opens the database file at path, creating missing parent directories
// first. The engine version is fetched immediately so a bad file fails here
// rather than on the first statement.
func Open(path string, dialect Dialect) (*Engine, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	handle, err := sql.Open(dialect.Driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The shell is single-threaded, and one connection keeps :memory:
	// databases from being cloned per pooled connection.
	handle.SetMaxOpenConns(1)

	var version string
	if err := handle.QueryRow(dialect.VersionQuery).Scan(&version); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"dialect": dialect.Name,
		"version": version,
	}).Debug("Opened database")

	return &Engine{
		db:      handle,
		dialect: dialect,
		path:    path,
		version: version,
	}, nil
}

// Classify reports whether a statement reads rows or mutates data. Anything
// with a case-insensitive SELECT prefix is a read.
func Classify(statement string) core.StatementKind {
	trimmed := strings.TrimSpace(statement)
	if len(trimmed) >= 6 && strings.EqualFold(trimmed[:6], "SELECT") {
		return core.ReadStatement
	}
	return core.WriteStatement
}

// Execute runs one SQL statement and times it. Reads fetch and stringify
// every row before returning; writes report rows affected. Engine errors
// come back unwrapped so their text reaches the user verbatim.
func (engine *Engine) Execute(statement string) (Result, error) {
	if err := engine.ensureOpen(); err != nil {
		return nil, err
	}

	statement = strings.TrimSpace(statement)
	start := time.Now()

	if Classify(statement) == core.ReadStatement {
		set, err := engine.fetchAll(statement)
		if err != nil {
			return nil, err
		}
		return QueryResult{Set: set, Elapsed: time.Since(start)}, nil
	}

	result, err := engine.db.Exec(statement)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows for DDL.
		affected = 0
	}
	return ExecResult{RowsAffected: affected, Elapsed: time.Since(start)}, nil
}

// Tables returns the names of all tables in the database, sorted.
func (engine *Engine) Tables() ([]string, error) {
	if err := engine.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := engine.db.Query(engine.dialect.TablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Describe returns column metadata for the named table. Table names match
// case-insensitively; a missing table yields a nil slice, not an error.
func (engine *Engine) Describe(table string) ([]core.ColumnInfo, error) {
	if err := engine.ensureOpen(); err != nil {
		return nil, err
	}

	names, err := engine.Tables()
	if err != nil {
		return nil, err
	}
	found := false
	for _, name := range names {
		if strings.EqualFold(name, table) {
			table = name
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	set, err := engine.fetchAll(fmt.Sprintf(engine.dialect.DescribeQuery, quoteLiteral(table)))
	if err != nil {
		return nil, err
	}

	columns := make([]core.ColumnInfo, 0, set.Len())
	for i := range set.Rows {
		columns = append(columns, core.ColumnInfo{
			Name:       set.Value(i, "name"),
			Type:       set.Value(i, "type"),
			Nullable:   !truthy(set.Value(i, "notnull")),
			Default:    set.Value(i, "dflt_value"),
			PrimaryKey: truthy(set.Value(i, "pk")),
		})
	}
	return columns, nil
}

// Version returns the engine version fetched at open time.
func (engine *Engine) Version() string {
	return engine.version
}

// Path returns the database path this engine was opened with.
func (engine *Engine) Path() string {
	return engine.path
}

// Dialect returns the dialect this engine was opened with.
func (engine *Engine) Dialect() Dialect {
	return engine.dialect
}

// Close releases the underlying handle. Closing twice is a no-op.
func (engine *Engine) Close() error {
	if engine == nil || engine.db == nil {
		return nil
	}
	err := engine.db.Close()
	engine.db = nil
	log.WithField("path", engine.path).Debug("Closed database")
	return err
}

func (engine *Engine) ensureOpen() error {
	if engine == nil || engine.db == nil {
		return ErrClosed
	}
	return nil
}

// fetchAll runs a read statement and materializes every row as strings, in
// engine column order.
func (engine *Engine) fetchAll(statement string) (core.ResultSet, error) {
	rows, err := engine.db.Query(statement)
	if err != nil {
		return core.ResultSet{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return core.ResultSet{}, err
	}

	set := core.ResultSet{Columns: columns}
	values := make([]any, len(columns))
	scan := make([]any, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return core.ResultSet{}, err
		}
		row := make([]string, len(columns))
		for i, value := range values {
			row[i] = stringify(value)
		}
		set.Rows = append(set.Rows, row)
	}
	return set, rows.Err()
}

// stringify renders one scanned value the way it will be displayed and
// exported. NULL becomes the empty string.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// truthy normalizes the 0/1 and true/false forms that table_info pragmas
// report across engines.
func truthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	}
	return false
}
