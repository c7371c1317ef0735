package sqlcli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/google/go-cmp/cmp"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
)

func setupTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	var buf bytes.Buffer
	shell := New(Options{
		Out:        &buf,
		Filesystem: memfs.New(),
	})
	t.Cleanup(func() { shell.Close() })
	return shell, &buf
}

func connectTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	shell, buf := setupTestShell(t)
	if shell.Dispatch("connect :memory:") {
		t.Fatal("Expected connect not to quit the shell")
	}
	if !shell.Connected() {
		t.Fatalf("Failed to connect: %s", buf.String())
	}
	buf.Reset()
	return shell, buf
}

func mustDispatch(t *testing.T, shell *Shell, line string) {
	t.Helper()
	if shell.Dispatch(line) {
		t.Fatalf("Dispatch(%q) unexpectedly quit the shell", line)
	}
}

func TestShellEmptyLineIsNoOp(t *testing.T) {
	shell, buf := setupTestShell(t)

	if shell.Dispatch("") || shell.Dispatch("   ") {
		t.Error("Expected empty input not to quit")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output for empty input, got %q", buf.String())
	}
	if len(shell.History()) != 0 {
		t.Error("Expected no history entries for empty input")
	}
}

func TestShellUnknownCommand(t *testing.T) {
	shell, buf := setupTestShell(t)

	mustDispatch(t, shell, "frobnicate everything")
	if !strings.Contains(buf.String(), "Unknown command: frobnicate") {
		t.Errorf("Expected unknown command message, got %q", buf.String())
	}
}

func TestShellKeywordCaseSensitive(t *testing.T) {
	shell, buf := connectTestShell(t)

	mustDispatch(t, shell, "QUERY SELECT 1")
	if !strings.Contains(buf.String(), "Unknown command: QUERY") {
		t.Errorf("Expected uppercase keyword to be rejected, got %q", buf.String())
	}
	if len(shell.History()) != 0 {
		t.Errorf("Expected no history entries, got %d", len(shell.History()))
	}
}

func TestShellCommandsRequireConnection(t *testing.T) {
	for _, line := range []string{
		"query SELECT 1",
		"tables",
		"describe users",
		"run setup.sql",
	} {
		t.Run(strings.Fields(line)[0], func(t *testing.T) {
			shell, buf := setupTestShell(t)
			mustDispatch(t, shell, line)
			if !strings.Contains(buf.String(), "no database connection") {
				t.Errorf("Expected connection error for %q, got %q", line, buf.String())
			}
		})
	}
}

func TestShellConnect(t *testing.T) {
	shell, buf := setupTestShell(t)

	mustDispatch(t, shell, "connect :memory:")

	output := buf.String()
	if !strings.Contains(output, "✓ Connected to: :memory:") {
		t.Errorf("Expected connect confirmation, got %q", output)
	}
	if !strings.Contains(output, "sqlite version:") {
		t.Errorf("Expected engine version line, got %q", output)
	}
	if !strings.Contains(output, "No tables found in database") {
		t.Errorf("Expected empty table listing, got %q", output)
	}
	if shell.DatabasePath() != ":memory:" {
		t.Errorf("Expected database path :memory:, got %s", shell.DatabasePath())
	}
}

func TestShellConnectMissingArgument(t *testing.T) {
	shell, buf := setupTestShell(t)

	mustDispatch(t, shell, "connect")
	if !strings.Contains(buf.String(), "Usage: connect <database_path>") {
		t.Errorf("Expected usage message, got %q", buf.String())
	}
	if shell.Connected() {
		t.Error("Expected shell to stay disconnected")
	}
}

func TestShellConnectCreatesNestedPath(t *testing.T) {
	shell, buf := setupTestShell(t)
	path := filepath.Join(t.TempDir(), "data", "nested", "app.db")

	mustDispatch(t, shell, "connect "+path)
	if !shell.Connected() {
		t.Fatalf("Failed to connect to nested path: %s", buf.String())
	}
}

func TestShellConnectReplacesConnection(t *testing.T) {
	shell, buf := connectTestShell(t)
	path := filepath.Join(t.TempDir(), "second.db")

	mustDispatch(t, shell, "connect "+path)

	if !strings.Contains(buf.String(), "Closed previous connection") {
		t.Errorf("Expected previous connection closed, got %q", buf.String())
	}
	if shell.DatabasePath() != path {
		t.Errorf("Expected new path %s, got %s", path, shell.DatabasePath())
	}
}

func TestShellConnectFailureLeavesDisconnected(t *testing.T) {
	shell, buf := connectTestShell(t)

	// A directory is not a database file.
	mustDispatch(t, shell, "connect "+t.TempDir())

	if !strings.Contains(buf.String(), "✗ Error:") {
		t.Errorf("Expected engine error, got %q", buf.String())
	}
	if shell.Connected() {
		t.Error("Expected shell disconnected after failed connect")
	}
}

func TestShellQuerySelect(t *testing.T) {
	shell, buf := connectTestShell(t)

	mustDispatch(t, shell, "query CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	mustDispatch(t, shell, "query INSERT INTO users (name) VALUES ('Alice')")
	buf.Reset()

	mustDispatch(t, shell, "query SELECT * FROM users")

	output := buf.String()
	if !strings.Contains(output, "Query results (1 rows)") {
		t.Errorf("Expected result header, got %q", output)
	}
	if !strings.Contains(output, "id | name ") {
		t.Errorf("Expected table header, got %q", output)
	}
	if !strings.Contains(output, "1  | Alice") {
		t.Errorf("Expected data row, got %q", output)
	}

	want := core.ResultSet{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", "Alice"}},
	}
	if diff := cmp.Diff(want, shell.LastResults()); diff != "" {
		t.Errorf("Unexpected last results (-want +got):\n%s", diff)
	}
}

func TestShellQueryWrite(t *testing.T) {
	shell, buf := connectTestShell(t)

	mustDispatch(t, shell, "query CREATE TABLE t (id INTEGER)")
	buf.Reset()

	mustDispatch(t, shell, "query INSERT INTO t VALUES (1), (2), (3)")

	output := buf.String()
	if !strings.Contains(output, "✓ Query executed successfully") {
		t.Errorf("Expected write confirmation, got %q", output)
	}
	if !strings.Contains(output, "Rows affected: 3") {
		t.Errorf("Expected affected count, got %q", output)
	}
	if !shell.LastResults().Empty() {
		t.Error("Expected writes to leave last results untouched")
	}
}

func TestShellQueryEmptyResult(t *testing.T) {
	shell, buf := connectTestShell(t)

	mustDispatch(t, shell, "query CREATE TABLE t (id INTEGER)")
	buf.Reset()

	mustDispatch(t, shell, "query SELECT * FROM t")
	if !strings.Contains(buf.String(), "No results found") {
		t.Errorf("Expected empty result message, got %q", buf.String())
	}
}

func TestShellQueryErrorSkipsHistory(t *testing.T) {
	shell, buf := connectTestShell(t)

	mustDispatch(t, shell, "query SELECT * FROM missing_table")

	if !strings.Contains(buf.String(), "✗ Error: SQL error:") {
		t.Errorf("Expected SQL error, got %q", buf.String())
	}
	if len(shell.History()) != 0 {
		t.Errorf("Expected failed statement out of history, got %d entries", len(shell.History()))
	}
}

func TestShellQueryErrorKeepsLastResults(t *testing.T) {
	shell, _ := connectTestShell(t)

	mustDispatch(t, shell, "query CREATE TABLE t (id INTEGER)")
	mustDispatch(t, shell, "query INSERT INTO t VALUES (7)")
	mustDispatch(t, shell, "query SELECT * FROM t")
	before := shell.LastResults()

	mustDispatch(t, shell, "query SELECT * FROM missing_table")

	if diff := cmp.Diff(before, shell.LastResults()); diff != "" {
		t.Errorf("Expected last results unchanged after error (-want +got):\n%s", diff)
	}
}

func TestShellHistoryRecordsMetadata(t *testing.T) {
	shell, _ := connectTestShell(t)
	start := time.Now()

	mustDispatch(t, shell, "query CREATE TABLE t (id INTEGER)")
	mustDispatch(t, shell, "query INSERT INTO t VALUES (1), (2)")
	mustDispatch(t, shell, "query SELECT * FROM t")

	history := shell.History()
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}

	insert := history[1]
	if insert.Kind != core.WriteStatement || insert.Rows != 2 {
		t.Errorf("Expected write entry with 2 affected, got kind=%v rows=%d", insert.Kind, insert.Rows)
	}

	selectEntry := history[2]
	if selectEntry.Kind != core.ReadStatement || selectEntry.Rows != 2 {
		t.Errorf("Expected read entry with 2 rows, got kind=%v rows=%d", selectEntry.Kind, selectEntry.Rows)
	}
	if selectEntry.At.Before(start.Add(-time.Second)) {
		t.Error("Expected entry timestamp near execution time")
	}
	if selectEntry.Query != "SELECT * FROM t" {
		t.Errorf("Expected full query text, got %q", selectEntry.Query)
	}
}

func TestShellHistoryIsCopy(t *testing.T) {
	shell, _ := connectTestShell(t)

	mustDispatch(t, shell, "query SELECT 1")
	history := shell.History()
	history[0].Query = "mutated"

	if shell.History()[0].Query == "mutated" {
		t.Error("Expected History to return a copy")
	}
}

func TestShellExitAndQuit(t *testing.T) {
	for _, keyword := range []string{"exit", "quit"} {
		t.Run(keyword, func(t *testing.T) {
			shell, buf := connectTestShell(t)

			if !shell.Dispatch(keyword) {
				t.Fatalf("Expected %s to quit the shell", keyword)
			}
			output := buf.String()
			if !strings.Contains(output, "Database connection closed.") {
				t.Errorf("Expected connection closed message, got %q", output)
			}
			if !strings.Contains(output, "Goodbye!") {
				t.Errorf("Expected farewell, got %q", output)
			}
			if shell.Connected() {
				t.Error("Expected connection closed on exit")
			}
		})
	}
}

func TestShellExitWithoutConnection(t *testing.T) {
	shell, buf := setupTestShell(t)

	if !shell.Dispatch("exit") {
		t.Fatal("Expected exit to quit the shell")
	}
	if strings.Contains(buf.String(), "Database connection closed.") {
		t.Error("Expected no close message without a connection")
	}
	if !strings.Contains(buf.String(), "Goodbye!") {
		t.Errorf("Expected farewell, got %q", buf.String())
	}
}

func TestShellPagerFlow(t *testing.T) {
	var buf bytes.Buffer
	var pauses int
	shell := New(Options{
		Out:        &buf,
		Filesystem: memfs.New(),
		PageSize:   2,
		Pager: func(shown, total int) bool {
			pauses++
			return true
		},
	})
	defer shell.Close()

	mustDispatch(t, shell, "connect :memory:")
	mustDispatch(t, shell, "query CREATE TABLE t (id INTEGER)")
	mustDispatch(t, shell, "query INSERT INTO t VALUES (1), (2), (3), (4), (5)")
	mustDispatch(t, shell, "query SELECT * FROM t ORDER BY id")

	if pauses != 2 {
		t.Errorf("Expected 2 pager pauses for 5 rows at page size 2, got %d", pauses)
	}
	if !strings.Contains(buf.String(), "Showing rows 5-5 of 5") {
		t.Errorf("Expected final page counter, got %q", buf.String())
	}
}

func TestShellWorkflow(t *testing.T) {
	shell, buf := setupTestShell(t)

	mustDispatch(t, shell, "connect :memory:")
	mustDispatch(t, shell, "query CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	mustDispatch(t, shell, "query INSERT INTO users (name) VALUES ('Alice')")
	mustDispatch(t, shell, "query SELECT name FROM users")
	mustDispatch(t, shell, "save users.json json")
	mustDispatch(t, shell, "history")

	if strings.Contains(buf.String(), "✗") {
		t.Fatalf("Expected clean workflow, got:\n%s", buf.String())
	}
	if len(shell.History()) != 3 {
		t.Errorf("Expected 3 history entries, got %d", len(shell.History()))
	}

	want := core.ResultSet{Columns: []string{"name"}, Rows: [][]string{{"Alice"}}}
	if diff := cmp.Diff(want, shell.LastResults()); diff != "" {
		t.Errorf("Unexpected final results (-want +got):\n%s", diff)
	}

	if !shell.Dispatch("exit") {
		t.Error("Expected exit to end the session")
	}
}
