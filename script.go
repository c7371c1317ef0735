package sqlcli

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rudrasatani13/Sqlite-cli-tool/db"
)

// runScript executes every statement in a SQL script through the normal
// query pipeline. Failed statements are reported and counted but do not
// stop the run.
func (shell *Shell) runScript(source string) error {
	reader, err := shell.exporter.Open(source)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	statements := splitStatements(string(data))
	log.WithFields(log.Fields{
		"source":     source,
		"statements": len(statements),
	}).Debug("Running script")

	succeeded := 0
	failed := 0

	for i, statement := range statements {
		result, err := shell.engine.Execute(statement)
		if err != nil {
			errorColor.Fprintf(shell.out, "[%d] ✗ %s\n", i+1, truncate(statement, 50))
			fmt.Fprintf(shell.out, "      Error: %v\n", err)
			failed++
			continue
		}

		shell.record(statement, result)
		succeeded++

		switch result := result.(type) {
		case db.QueryResult:
			shell.last = result.Set
			successColor.Fprintf(shell.out, "[%d] ✓ %s (%d rows)\n", i+1, truncate(statement, 50), result.Set.Len())
		case db.ExecResult:
			successColor.Fprintf(shell.out, "[%d] ✓ %s (%d affected)\n", i+1, truncate(statement, 50), result.RowsAffected)
		}
	}

	fmt.Fprintf(shell.out, "\nScript complete: %d succeeded, %d failed\n", succeeded, failed)
	return nil
}

// splitStatements splits SQL content into individual statements on
// semicolons, ignoring separators inside quoted strings and stripping
// -- line comments.
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	inString := false
	stringChar := byte(0)

	flush := func() {
		if statement := strings.TrimSpace(current.String()); statement != "" {
			statements = append(statements, statement)
		}
		current.Reset()
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			current.WriteByte(ch)
			if ch == stringChar {
				inString = false
			}
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			inString = true
			stringChar = ch
			current.WriteByte(ch)

		case ch == '-' && i+1 < len(content) && content[i+1] == '-':
			// Skip to end of line, keeping the newline as a separator.
			for i < len(content) && content[i] != '\n' {
				i++
			}
			current.WriteByte('\n')

		case ch == ';':
			flush()

		default:
			current.WriteByte(ch)
		}
	}

	flush()
	return statements
}
