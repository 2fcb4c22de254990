package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"murmur/core"
)

// SQLiteAccountStorage implements AccountStore using SQLite.
type SQLiteAccountStorage struct {
	sqlite *SQLite
	logger *zap.SugaredLogger
}

// NewSQLiteAccountStorage creates a new SQLite-based account storage.
func NewSQLiteAccountStorage(sqlite *SQLite, logger *zap.SugaredLogger) *SQLiteAccountStorage {
	return &SQLiteAccountStorage{
		sqlite: sqlite,
		logger: logger,
	}
}

// InsertAccount persists a new account and returns its assigned ID.
// The UNIQUE constraint on username is the authoritative duplicate check;
// two concurrent registrations can both pass the service-level lookup,
// but only one insert wins here.
func (sas *SQLiteAccountStorage) InsertAccount(ctx context.Context, username, password string) (int64, error) {
	result, err := sas.sqlite.WriteDB.ExecContext(ctx,
		"INSERT INTO account (username, password) VALUES (?, ?)",
		username, password,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned account id: %w", err)
	}

	sas.logger.Infow("Created account", "account_id", id)
	return id, nil
}

// GetAccountByID retrieves an account by ID.
func (sas *SQLiteAccountStorage) GetAccountByID(ctx context.Context, accountID int64) (*core.Account, error) {
	var account core.Account
	err := sas.sqlite.ReadDB.QueryRowContext(ctx,
		"SELECT account_id, username, password FROM account WHERE account_id = ?",
		accountID,
	).Scan(&account.ID, &account.Username, &account.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}

	return &account, nil
}

// GetAccountByUsername retrieves an account by username.
func (sas *SQLiteAccountStorage) GetAccountByUsername(ctx context.Context, username string) (*core.Account, error) {
	var account core.Account
	err := sas.sqlite.ReadDB.QueryRowContext(ctx,
		"SELECT account_id, username, password FROM account WHERE username = ?",
		username,
	).Scan(&account.ID, &account.Username, &account.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &account, nil
}

// ListAccounts retrieves all accounts in creation order.
// Used by the admin CLI, not by the services.
func (sas *SQLiteAccountStorage) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := sas.sqlite.ReadDB.QueryContext(ctx,
		"SELECT account_id, username, password FROM account ORDER BY account_id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []core.Account{}
	for rows.Next() {
		var account core.Account
		if err := rows.Scan(&account.ID, &account.Username, &account.Password); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

var _ AccountStore = (*SQLiteAccountStorage)(nil)
