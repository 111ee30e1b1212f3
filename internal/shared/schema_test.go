package shared

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestDatabase(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPure} {
		t.Run(driver, func(t *testing.T) {
			db, err := NewDatabase(driver, MemoryPath)
			if err != nil {
				t.Fatalf("failed to create database: %v", err)
			}
			defer db.Close()

			if err := EnsureSchema(db); err != nil {
				t.Fatalf("failed to ensure schema: %v", err)
			}

			if err := EnsureSchema(db); err != nil {
				t.Fatalf("schema should be idempotent: %v", err)
			}

			for _, table := range []string{"book", "video"} {
				var name string
				err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
				if err != nil {
					t.Errorf("%s table should exist: %v", table, err)
				}
			}
		})
	}

	t.Run("file database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		db, err := NewDatabase("", path)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := EnsureSchema(db); err != nil {
			t.Fatalf("failed to ensure schema: %v", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase("postgres", MemoryPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("schemaStatements", func(t *testing.T) {
		statements := schemaStatements()
		if len(statements) != 2 {
			t.Fatalf("expected 2 statements, got %d", len(statements))
		}
		for _, stmt := range statements {
			if stmt == "" {
				t.Error("empty statement")
			}
		}
	})

	t.Run("semicolon inside a comment", func(t *testing.T) {
		script := "-- first; second\nCREATE TABLE a (id INTEGER); -- trailing; note\nCREATE TABLE b (id INTEGER);\n"
		statements := splitStatements(script)
		if len(statements) != 2 {
			t.Fatalf("expected 2 statements, got %d: %q", len(statements), statements)
		}
		if statements[0] != "CREATE TABLE a (id INTEGER)" || statements[1] != "CREATE TABLE b (id INTEGER)" {
			t.Errorf("unexpected statements: %q", statements)
		}
	})

	t.Run("embedded schema has no comment text", func(t *testing.T) {
		for _, stmt := range schemaStatements() {
			if !strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS") {
				t.Errorf("unexpected statement start: %q", stmt)
			}
		}
	})
}
