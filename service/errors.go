package service

import "errors"

// Service-level error kinds. Handlers distinguish failure causes with
// errors.Is against these sentinels; services attach the concrete reason
// by wrapping ("%w: reason").
var (
	// ErrValidation is returned when input fails a business rule
	// (blank username, short password, blank or oversized text,
	// duplicate username, missing author).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when login fails, whether the
	// username is unknown or the password doesn't match. Callers get
	// one uniform rejection so the response doesn't leak which half
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
