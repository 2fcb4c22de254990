package storage

import (
	"context"

	"murmur/core"
)

// AccountStore is the storage gateway contract for accounts.
// Implemented by SQLiteAccountStorage; consumed by the account service
// and the admin CLI.
type AccountStore interface {
	// InsertAccount persists a new account and returns its assigned ID.
	// Returns ErrDuplicateUsername when the username is already taken.
	InsertAccount(ctx context.Context, username, password string) (int64, error)

	// GetAccountByID retrieves an account by ID.
	// Returns ErrAccountNotFound when no row matches.
	GetAccountByID(ctx context.Context, accountID int64) (*core.Account, error)

	// GetAccountByUsername retrieves an account by username.
	// Returns ErrAccountNotFound when no row matches.
	GetAccountByUsername(ctx context.Context, username string) (*core.Account, error)
}

// MessageStore is the storage gateway contract for messages.
// Implemented by SQLiteMessageStorage; consumed by the message service
// and the admin CLI.
type MessageStore interface {
	// InsertMessage persists a new message and returns its assigned ID.
	// Returns ErrAuthorNotFound when the foreign key to account fails.
	InsertMessage(ctx context.Context, authorID int64, text string, postedAtEpoch int64) (int64, error)

	// GetMessageByID retrieves a message by ID.
	// Returns ErrMessageNotFound when no row matches.
	GetMessageByID(ctx context.Context, messageID int64) (*core.Message, error)

	// GetAllMessages retrieves every message in insertion order.
	GetAllMessages(ctx context.Context) ([]core.Message, error)

	// GetMessagesByAuthor retrieves all messages posted by one account,
	// in insertion order.
	GetMessagesByAuthor(ctx context.Context, accountID int64) ([]core.Message, error)

	// UpdateMessageText replaces the text of an existing message.
	// Returns ErrMessageNotFound when no row matches.
	UpdateMessageText(ctx context.Context, messageID int64, newText string) error

	// DeleteMessage removes a message.
	// Returns ErrMessageNotFound when no row matches.
	DeleteMessage(ctx context.Context, messageID int64) error
}
