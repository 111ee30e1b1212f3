package shared

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed sql/schema.sql
var schemaSQL string

// EnsureSchema creates the book and video tables when they don't exist yet.
//
// Safe to call on every open: all statements are CREATE ... IF NOT EXISTS.
func EnsureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements() {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// schemaStatements splits the embedded schema into individual statements.
func schemaStatements() []string {
	return splitStatements(schemaSQL)
}

// splitStatements strips comments first so a ';' inside a comment never ends a statement.
func splitStatements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(removeComments(script), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
