package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverCGO is the name registered by mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPure is the name registered by modernc.org/sqlite (no cgo).
	DriverPure = "sqlite"
	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
)

// NewDatabase opens a connection to a SQLite database at the specified path using driver.
// The path can be ":memory:" for an in-memory database. An empty driver selects [DriverCGO].
// Returns an open database connection or an error if connection fails.
func NewDatabase(driver, path string) (*sql.DB, error) {
	switch driver {
	case "":
		driver = DriverCGO
	case DriverCGO, DriverPure:
	default:
		return nil, fmt.Errorf("%w: sqlite driver %q", ErrInvalidConfig, driver)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would see its own empty database,
	// and SQLite only supports a single writer anyway.
	ConfigureDatabase(db, 1, 1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
//
// Non-positive values are ignored.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}
