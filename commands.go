package sqlcli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
	"github.com/rudrasatani13/Sqlite-cli-tool/db"
	"github.com/rudrasatani13/Sqlite-cli-tool/render"
)

// command is one entry in the dispatch registry. terminal marks the
// commands that end the read loop.
type command struct {
	usage    string
	summary  string
	run      func(shell *Shell, args string) error
	terminal bool
}

// usageError reports a malformed invocation; Dispatch prints it with the
// command's usage line instead of the generic error prefix.
type usageError string

func (usage usageError) Error() string {
	return "usage: " + string(usage)
}

// commands is the fixed registry of shell commands, populated at init since
// the help handler walks the registry itself. commandOrder fixes the listing
// order for help.
var commands map[string]command

var commandOrder = []string{
	"connect", "query", "save", "history", "tables", "describe",
	"pagesize", "run", "clear", "status", "help", "exit", "quit",
}

func init() {
	commands = map[string]command{
		"connect": {
			usage:   "connect <database_path>",
			summary: "Open a database file, creating it if missing",
			run:     cmdConnect,
		},
		"query": {
			usage:   "query <SQL_STATEMENT>",
			summary: "Execute a SQL statement",
			run:     cmdQuery,
		},
		"save": {
			usage:   "save <filename> [csv|json|txt]",
			summary: "Export the last query results to a file",
			run:     cmdSave,
		},
		"history": {
			usage:   "history [limit]",
			summary: "Show past queries, most recent last",
			run:     cmdHistory,
		},
		"tables": {
			usage:   "tables",
			summary: "List tables in the connected database",
			run:     cmdTables,
		},
		"describe": {
			usage:   "describe <table_name>",
			summary: "Show the schema of a table",
			run:     cmdDescribe,
		},
		"pagesize": {
			usage:   "pagesize [n]",
			summary: "Show or set rows per page",
			run:     cmdPagesize,
		},
		"run": {
			usage:   "run <script_path>",
			summary: "Execute a SQL script, statement by statement",
			run:     cmdRun,
		},
		"clear": {
			usage:   "clear",
			summary: "Clear the screen",
			run:     cmdClear,
		},
		"status": {
			usage:   "status",
			summary: "Show connection and session details",
			run:     cmdStatus,
		},
		"help": {
			usage:   "help",
			summary: "Show this help message",
			run:     cmdHelp,
		},
		"exit": {
			usage:    "exit",
			summary:  "Close the connection and leave",
			run:      cmdExit,
			terminal: true,
		},
		"quit": {
			usage:    "quit",
			summary:  "Same as exit",
			run:      cmdExit,
			terminal: true,
		},
	}
}

// Dispatch executes one line of input and reports whether the shell should
// terminate. Empty lines are no-ops; unknown keywords print a message and
// change nothing.
func (shell *Shell) Dispatch(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	keyword, args := splitKeyword(line)
	cmd, ok := commands[keyword]
	if !ok {
		errorColor.Fprintf(shell.out, "✗ Unknown command: %s (type 'help' for commands)\n", keyword)
		return false
	}

	if err := cmd.run(shell, args); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			errorColor.Fprintf(shell.out, "✗ Usage: %s\n", string(usage))
		} else {
			errorColor.Fprintf(shell.out, "✗ Error: %v\n", err)
		}
		return false
	}
	return cmd.terminal
}

// splitKeyword separates the command keyword from its argument tail.
func splitKeyword(line string) (keyword, args string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func cmdConnect(shell *Shell, args string) error {
	path := strings.TrimSpace(args)
	if path == "" {
		return usageError("connect <database_path>")
	}
	return shell.connect(path)
}

func cmdQuery(shell *Shell, args string) error {
	if shell.engine == nil {
		return ErrNotConnected
	}
	statement := strings.TrimSpace(args)
	if statement == "" {
		return usageError("query <SQL_STATEMENT>")
	}
	return shell.execute(statement)
}

func cmdSave(shell *Shell, args string) error {
	if shell.last.Empty() {
		return ErrNoResults
	}

	fields := strings.Fields(args)
	if len(fields) == 0 {
		return usageError("save <filename> [csv|json|txt]")
	}
	dest := fields[0]
	format := shell.format
	if len(fields) > 1 {
		format = fields[1]
	}

	records, err := shell.exporter.Save(dest, format, shell.last)
	if err != nil {
		return err
	}

	successColor.Fprintf(shell.out, "✓ Results saved to: %s\n", dest)
	fmt.Fprintf(shell.out, "Records saved: %d\n", records)
	return nil
}

func cmdHistory(shell *Shell, args string) error {
	limit := len(shell.history)
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid history limit: %s", trimmed)
		}
		if n < limit {
			limit = n
		}
	}

	if len(shell.history) == 0 {
		fmt.Fprintln(shell.out, "No query history available")
		return nil
	}

	entries := shell.history[len(shell.history)-limit:]
	fmt.Fprintf(shell.out, "\nQuery history (%d of %d):\n", len(entries), len(shell.history))
	for i, entry := range entries {
		label := "Rows"
		if entry.Kind == core.WriteStatement {
			label = "Affected"
		}
		fmt.Fprintf(shell.out, "\n%d. [%s]\n", i+1, entry.At.Format(historyTimeLayout))
		fmt.Fprintf(shell.out, "   Query: %s\n", truncate(entry.Query, 60))
		fmt.Fprintf(shell.out, "   Time: %s | %s: %d\n", db.FormatElapsed(entry.Elapsed), label, entry.Rows)
	}
	return nil
}

func cmdTables(shell *Shell, args string) error {
	if shell.engine == nil {
		return ErrNotConnected
	}
	return shell.printTables()
}

func cmdDescribe(shell *Shell, args string) error {
	if shell.engine == nil {
		return ErrNotConnected
	}
	table := strings.TrimSpace(args)
	if table == "" {
		return usageError("describe <table_name>")
	}

	columns, err := shell.engine.Describe(table)
	if err != nil {
		return fmt.Errorf("failed to describe table: %w", err)
	}
	if len(columns) == 0 {
		return fmt.Errorf("table '%s' not found", table)
	}

	set := core.ResultSet{Columns: []string{"Column", "Type", "Null", "Default", "PK"}}
	for _, column := range columns {
		null := "NO"
		if column.Nullable {
			null = "YES"
		}
		pk := ""
		if column.PrimaryKey {
			pk = "YES"
		}
		set.Rows = append(set.Rows, []string{column.Name, column.Type, null, column.Default, pk})
	}

	fmt.Fprintf(shell.out, "\nTable: %s\n", table)
	render.Table(shell.out, set)
	return nil
}

func cmdPagesize(shell *Shell, args string) error {
	trimmed := strings.TrimSpace(args)
	if trimmed == "" {
		fmt.Fprintf(shell.out, "Current page size: %d\n", shell.pageSize)
		return nil
	}

	size, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("invalid page size: %s", trimmed)
	}
	if size < 1 {
		return errors.New("page size must be greater than 0")
	}

	shell.pageSize = size
	successColor.Fprintf(shell.out, "✓ Page size set to: %d\n", size)
	return nil
}

func cmdRun(shell *Shell, args string) error {
	if shell.engine == nil {
		return ErrNotConnected
	}
	source := strings.TrimSpace(args)
	if source == "" {
		return usageError("run <script_path>")
	}
	return shell.runScript(source)
}

func cmdClear(shell *Shell, args string) error {
	fmt.Fprint(shell.out, "\033[H\033[2J")
	return nil
}

func cmdStatus(shell *Shell, args string) error {
	fmt.Fprintln(shell.out, "\nConnection status:")
	if shell.engine == nil {
		fmt.Fprintln(shell.out, "Not connected")
		return nil
	}

	fmt.Fprintf(shell.out, "Connected to: %s (%s %s)\n",
		shell.engine.Path(), shell.engine.Dialect().Name, shell.engine.Version())
	fmt.Fprintf(shell.out, "Queries executed: %d\n", len(shell.history))
	fmt.Fprintf(shell.out, "Page size: %d\n", shell.pageSize)
	if !shell.last.Empty() {
		fmt.Fprintf(shell.out, "Last result count: %d\n", shell.last.Len())
	}
	return nil
}

func cmdHelp(shell *Shell, args string) error {
	fmt.Fprintln(shell.out)
	promptColor.Fprintln(shell.out, "Available commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(shell.out, "  %-32s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Fprintln(shell.out)
	return nil
}

func cmdExit(shell *Shell, args string) error {
	shell.Quit()
	return nil
}
