package sqlcli

import (
	"strings"
	"time"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
)

// HistoryEntry is one immutable record of a successfully executed statement.
// Rows holds the fetched row count for reads and the affected row count for
// writes.
type HistoryEntry struct {
	Query   string
	At      time.Time
	Elapsed time.Duration
	Kind    core.StatementKind
	Rows    int64
}

// historyTimeLayout is how entry timestamps are displayed.
const historyTimeLayout = "2006-01-02 15:04:05"

// now wraps time.Now - used to allow the clock to be swapped in tests
var now = time.Now

// truncate shortens a statement for one-line display: the first max
// characters plus an ellipsis when longer. Newlines and tabs flatten to
// spaces first.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
