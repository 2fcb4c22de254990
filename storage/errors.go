package storage

import "errors"

// Storage error constants
var (
	// ErrAccountNotFound is returned when an account is not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrMessageNotFound is returned when a message is not found
	ErrMessageNotFound = errors.New("message not found")

	// ErrDuplicateUsername is returned when an insert hits the UNIQUE
	// constraint on account.username. The constraint is the authoritative
	// uniqueness check; the service-level lookup is only a fast path.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAuthorNotFound is returned when a message insert references a
	// nonexistent account (foreign key violation)
	ErrAuthorNotFound = errors.New("author account does not exist")

	// Generic storage errors

	// ErrNotFound is a generic "not found" error
	ErrNotFound = errors.New("not found")

	// ErrDatabaseClosed is returned when attempting to use a closed database connection
	ErrDatabaseClosed = errors.New("database is closed")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("constraint violation")
)
