package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DetectDriver picks a driver from the DSN when none is configured.
func DetectDriver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// ExpandPath expands a leading tilde to the home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return homeDir + path[1:], nil
}

// ConnectDB opens the database. For SQLite the file and its directory are
// created when missing.
func ConnectDB(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DetectDriver(dsn)
	}
	if driver == DriverPostgres {
		return sql.Open(DriverPostgres, dsn)
	}

	dbPath, err := ExpandPath(dsn)
	if err != nil {
		return nil, err
	}

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	return sql.Open(DriverSQLite, dbPath)
}

// EnsureSchema creates the state table if it doesn't exist. The statement is
// valid for both SQLite and PostgreSQL.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
