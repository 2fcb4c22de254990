package core

import "context"

// ============================================================================
// Service Layer Interfaces
// ============================================================================
//
// DESIGN PRINCIPLES:
// 1. Interfaces are defined WHERE THEY ARE USED (consumer package), not where implemented
// 2. Small interfaces following Interface Segregation Principle
// 3. Accept interfaces, return concrete types
// 4. context.Context as first parameter for cancellation support
// 5. Typed errors (sentinel errors in storage package, wrapped with context in services)
//
// SERVICE LAYER PURPOSE:
// - Extract business logic from HTTP handlers
// - Enforce business rules and validation before any storage call
// - Orchestrate cross-service checks (message creation verifies the author)
// - Enable easier testing with interface mocks

// ============================================================================
// Account Service Interfaces
// ============================================================================

// AccountRegistrar registers new accounts.
// Consumers: API handlers (registerAccount), admin CLI
type AccountRegistrar interface {
	// Register validates and persists a new account.
	// Validation order, short-circuiting on first failure:
	// blank username, password shorter than MinPasswordLength,
	// username already taken. Returns the stored account with its
	// assigned ID on success.
	Register(ctx context.Context, candidate *Account) (*Account, error)
}

// AccountAuthenticator verifies account credentials.
// Consumers: API handlers (login)
type AccountAuthenticator interface {
	// Login verifies credentials against the stored account.
	// The password comparison is byte-exact. Returns the stored
	// account (including ID) on success, ErrInvalidCredentials
	// otherwise.
	Login(ctx context.Context, credentials *Account) (*Account, error)
}

// AccountChecker answers account existence queries.
// Consumers: MessageService (author check), API handlers
type AccountChecker interface {
	// Exists reports whether an account with the given ID is present.
	Exists(ctx context.Context, accountID int64) (bool, error)
}

// AccountService is the full account service surface exposed to the
// HTTP layer and the admin CLI.
type AccountService interface {
	AccountRegistrar
	AccountAuthenticator
	AccountChecker
}

// ============================================================================
// Message Service Interfaces
// ============================================================================

// MessageReader provides read operations for messages.
// Consumers: API handlers (getMessages, getMessageByID, getMessagesByAccount)
type MessageReader interface {
	// GetByID retrieves a single message.
	// Returns storage.ErrMessageNotFound if it doesn't exist.
	GetByID(ctx context.Context, messageID int64) (*Message, error)

	// GetAll retrieves all messages in insertion order.
	// Returns an empty slice when there are none.
	GetAll(ctx context.Context) ([]Message, error)

	// GetAllByAuthor retrieves all messages posted by one account,
	// in insertion order. Returns an empty slice when there are none;
	// an unknown account ID is not an error.
	GetAllByAuthor(ctx context.Context, accountID int64) ([]Message, error)
}

// MessageWriter provides mutation operations for messages.
// Consumers: API handlers (createMessage, updateMessage, deleteMessage)
type MessageWriter interface {
	// Create validates and persists a new message. The author must
	// exist; when it doesn't, the operation fails WITHOUT touching
	// message storage. Returns the stored message with its assigned ID.
	Create(ctx context.Context, candidate *Message) (*Message, error)

	// UpdateText replaces the text of an existing message and returns
	// the fully updated record (read-after-write, not the input echoed
	// back). Returns storage.ErrMessageNotFound for an unknown ID.
	UpdateText(ctx context.Context, messageID int64, newText string) (*Message, error)

	// Delete removes a message and returns the snapshot as it was
	// immediately before removal. Returns storage.ErrMessageNotFound
	// for an unknown ID.
	Delete(ctx context.Context, messageID int64) (*Message, error)
}

// MessageService is the full message service surface exposed to the
// HTTP layer and the admin CLI.
type MessageService interface {
	MessageReader
	MessageWriter
}
