package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestSQLite creates a test SQLite database in a temp directory.
func setupTestSQLite(t *testing.T) *SQLite {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	logger := zap.NewNop().Sugar()

	sqlite, err := NewSQLite(dbPath, logger)
	require.NoError(t, err, "Failed to create SQLite database")
	require.NotNil(t, sqlite, "SQLite instance should not be nil")
	require.NotNil(t, sqlite.DB, "Database connection should not be nil")

	t.Cleanup(func() {
		_ = sqlite.Close()
	})

	return sqlite
}

// TestNewSQLite_Success tests successful SQLite database creation
func TestNewSQLite_Success(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	logger := zap.NewNop().Sugar()

	sqlite, err := NewSQLite(dbPath, logger)
	require.NoError(t, err, "Should successfully create SQLite database")
	require.NotNil(t, sqlite, "SQLite instance should not be nil")
	assert.Equal(t, dbPath, sqlite.Path, "Database path should match")

	// Verify database file was created
	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")

	err = sqlite.Close()
	assert.NoError(t, err, "Should close database without error")
}

// TestNewSQLite_CreatesDirectory tests that NewSQLite creates parent directories
func TestNewSQLite_CreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "subdir", "nested", "test.db")

	logger := zap.NewNop().Sugar()

	sqlite, err := NewSQLite(dbPath, logger)
	require.NoError(t, err, "Should create parent directories")
	defer sqlite.Close()

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err, "Parent directory should exist")
}

// TestNewSQLite_CreatesSchema verifies both tables exist after init
func TestNewSQLite_CreatesSchema(t *testing.T) {
	sqlite := setupTestSQLite(t)

	for _, table := range []string{"account", "message"} {
		var name string
		err := sqlite.ReadDB.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "Table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

// TestNewSQLite_ForeignKeysEnforced verifies the posted_by reference is live
func TestNewSQLite_ForeignKeysEnforced(t *testing.T) {
	sqlite := setupTestSQLite(t)

	_, err := sqlite.WriteDB.Exec(
		"INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES (?, ?, ?)",
		9999, "orphan", 1700000000,
	)
	require.Error(t, err, "Insert referencing a nonexistent account should fail")
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}

func TestValidateDatabasePath_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		dbPath string
	}{
		{"empty", ""},
		{"traversal", "../outside.db"},
		{"null byte", "data\x00.db"},
		{"absolute outside temp", "/etc/murmur.db"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDatabasePath(tc.dbPath)
			assert.Error(t, err, "Path %q should be rejected", tc.dbPath)
		})
	}
}

func TestValidateDatabasePath_AllowsMemoryAndRelative(t *testing.T) {
	assert.NoError(t, validateDatabasePath(":memory:"))
	assert.NoError(t, validateDatabasePath("data/murmur.db"))
}
