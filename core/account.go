package core

import "strings"

// Validation limits for accounts
const (
	// MinPasswordLength is the minimum password length at registration,
	// counted in characters
	MinPasswordLength = 4
)

// Account represents a registered user identity.
// The ID is assigned by the storage layer on creation and is never reused.
type Account struct {
	ID       int64  `json:"account_id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// HasBlankUsername reports whether the username is empty or whitespace-only.
func (a *Account) HasBlankUsername() bool {
	return strings.TrimSpace(a.Username) == ""
}

// HasBlankPassword reports whether the password is empty or whitespace-only.
func (a *Account) HasBlankPassword() bool {
	return strings.TrimSpace(a.Password) == ""
}
