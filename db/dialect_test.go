package db

import "testing"

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain db file", "app.db", "sqlite"},
		{"sqlite extension", "data.sqlite", "sqlite"},
		{"no extension", "data", "sqlite"},
		{"memory", ":memory:", "sqlite"},
		{"duckdb extension", "warehouse.duckdb", "duckdb"},
		{"short duckdb extension", "warehouse.ddb", "duckdb"},
		{"uppercase extension", "WAREHOUSE.DUCKDB", "duckdb"},
		{"nested path", "data/nested/app.db", "sqlite"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DialectFor(test.path); got.Name != test.want {
				t.Errorf("DialectFor(%q) = %s, want %s", test.path, got.Name, test.want)
			}
		})
	}
}

func TestDialectByName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"sqlite", "sqlite", "sqlite", true},
		{"sqlite3 alias", "sqlite3", "sqlite", true},
		{"empty default", "", "sqlite", true},
		{"duckdb", "duckdb", "duckdb", true},
		{"mixed case", "DuckDB", "duckdb", true},
		{"unknown", "postgres", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dialect, ok := DialectByName(test.input)
			if ok != test.wantOK {
				t.Fatalf("DialectByName(%q) ok = %v, want %v", test.input, ok, test.wantOK)
			}
			if ok && dialect.Name != test.want {
				t.Errorf("DialectByName(%q) = %s, want %s", test.input, dialect.Name, test.want)
			}
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := quoteLiteral("users"); got != "'users'" {
		t.Errorf("Expected 'users', got %s", got)
	}
	if got := quoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("Expected quote doubling, got %s", got)
	}
}
