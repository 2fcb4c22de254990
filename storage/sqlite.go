package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite holds the SQLite database connections for the social store.
// PERFORMANCE: Separate read and write pools to leverage WAL mode's
// concurrent read capability (unlimited readers + exactly one writer).
type SQLite struct {
	DB      *sql.DB // Write connection pool (alias of WriteDB, kept for call sites that don't care)
	WriteDB *sql.DB // Write-only connection pool (MaxOpenConns=1 for WAL mode single writer)
	ReadDB  *sql.DB // Read-only connection pool (MaxOpenConns=10 for concurrent reads)
	Path    string
	Logger  *zap.SugaredLogger
}

// configureSQLiteConnection configures a SQLite connection pool with the
// standard settings: WAL journal, foreign keys, busy timeout.
func configureSQLiteConnection(db *sql.DB, logger *zap.SugaredLogger, dbPath string, poolType string) error {
	// Enable WAL mode explicitly with PRAGMA (connection string params don't work reliably)
	_, err := db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite disables foreign keys by default - MUST enable explicitly.
	// The message.posted_by -> account.account_id reference depends on this.
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Verify foreign keys are actually enabled
	var fkEnabled int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		return fmt.Errorf("failed to verify foreign keys: %w", err)
	}
	if fkEnabled != 1 {
		return fmt.Errorf("foreign keys not enabled (got: %d, expected: 1) - referential integrity will not be enforced", fkEnabled)
	}

	// Set busy timeout to prevent immediate SQLITE_BUSY errors
	_, err = db.Exec("PRAGMA busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// Verify WAL mode is actually enabled
	// NOTE: In-memory databases (":memory:") use "memory" journal mode, not "wal"
	var journalMode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		return fmt.Errorf("failed to query journal mode: %w", err)
	}
	if dbPath != ":memory:" && journalMode != "wal" {
		return fmt.Errorf("WAL mode not enabled (got: %s, expected: wal)", journalMode)
	}
	logger.Infof("SQLite %s pool: journal mode %s, foreign keys on", poolType, journalMode)

	return nil
}

// NewSQLite creates a new SQLite connection with split read/write pools
// and ensures the schema exists.
func NewSQLite(dbPath string, logger *zap.SugaredLogger) (*SQLite, error) {
	// SECURITY: Validate database path to prevent path traversal
	if err := validateDatabasePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// For in-memory databases, use shared cache mode so both pools access
	// the same database. Without it, each sql.Open(":memory:") creates a
	// separate empty database.
	actualPath := dbPath
	if dbPath == ":memory:" {
		actualPath = "file::memory:?cache=shared"
	}

	// === WRITE CONNECTION POOL ===
	writeDB, err := sql.Open("sqlite", actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite write database: %w", err)
	}

	if err := configureSQLiteConnection(writeDB, logger, dbPath, "write"); err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("failed to configure write connection: %w", err)
	}

	// WAL mode requires exactly one writer at a time for consistency
	writeDB.SetMaxOpenConns(1)
	writeDB.SetMaxIdleConns(1)
	writeDB.SetConnMaxLifetime(0) // Connections never expire (important for in-memory databases)
	writeDB.SetConnMaxIdleTime(10 * time.Minute)

	// === READ CONNECTION POOL ===
	readDB, err := sql.Open("sqlite", actualPath)
	if err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("failed to open SQLite read database: %w", err)
	}

	if err := configureSQLiteConnection(readDB, logger, dbPath, "read"); err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, fmt.Errorf("failed to configure read connection: %w", err)
	}

	// Enforce read-only access at the SQLite level for the read pool
	_, err = readDB.Exec("PRAGMA query_only=ON")
	if err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, fmt.Errorf("failed to enable query_only mode on read pool: %w", err)
	}

	// WAL mode allows unlimited concurrent readers without blocking
	readDB.SetMaxOpenConns(10)
	readDB.SetMaxIdleConns(5)
	readDB.SetConnMaxLifetime(5 * time.Minute)
	readDB.SetConnMaxIdleTime(10 * time.Minute)

	sqlite := &SQLite{
		DB:      writeDB,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Path:    dbPath,
		Logger:  logger,
	}

	// Create tables
	if err := sqlite.createTables(); err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Infof("SQLite database initialized at %s with separate read/write pools", dbPath)

	return sqlite, nil
}

// WithTransaction executes a function within a database transaction,
// rolling back on error or panic.
func (s *SQLite) WithTransaction(fn func(*sql.Tx) error) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // Re-panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction (original error: %w, rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// createTables creates all necessary tables.
func (s *SQLite) createTables() error {
	schema := `
	-- Accounts table
	CREATE TABLE IF NOT EXISTS account (
		account_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);

	-- Messages table
	CREATE TABLE IF NOT EXISTS message (
		message_id INTEGER PRIMARY KEY AUTOINCREMENT,
		posted_by INTEGER NOT NULL REFERENCES account(account_id),
		message_text TEXT NOT NULL,
		time_posted_epoch INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_message_posted_by ON message(posted_by);
	`

	if _, err := s.DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes both connection pools.
func (s *SQLite) Close() error {
	var writeErr, readErr error

	if s.WriteDB != nil {
		writeErr = s.WriteDB.Close()
	}
	if s.ReadDB != nil {
		readErr = s.ReadDB.Close()
	}

	if writeErr != nil {
		return fmt.Errorf("failed to close write pool: %w", writeErr)
	}
	if readErr != nil {
		return fmt.Errorf("failed to close read pool: %w", readErr)
	}

	return nil
}

// validateDatabasePath rejects paths that could escape the working
// directory or hit special files.
func validateDatabasePath(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if len(dbPath) > 512 {
		return fmt.Errorf("database path exceeds maximum length of 512 characters")
	}

	// Allow :memory: for in-memory databases and temp directories for tests
	if filepath.IsAbs(dbPath) && dbPath != ":memory:" {
		if !strings.Contains(dbPath, os.TempDir()) {
			return fmt.Errorf("absolute paths not allowed: %s", dbPath)
		}
	}

	// Even if path is relative, ".." can escape the working directory
	if strings.Contains(dbPath, "..") {
		return fmt.Errorf("path traversal not allowed (..): %s", dbPath)
	}

	// Null bytes can truncate path validation but not the actual filesystem operation
	if strings.Contains(dbPath, "\x00") {
		return fmt.Errorf("null bytes not allowed in path")
	}

	return nil
}
