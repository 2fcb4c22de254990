package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"murmur/core"
	"murmur/metrics"
	"murmur/storage"
	"murmur/util"

	"go.uber.org/zap"
)

// AccountServiceImpl implements core.AccountService.
// It provides the business logic layer between HTTP handlers and storage.
//
// DESIGN PATTERNS:
// - Dependency injection via constructor (storage is never constructed here)
// - Context propagation for cancellation
// - Typed error returns with wrapping
// - Stateless: no fields change after construction, every call is one-shot
type AccountServiceImpl struct {
	accountStorage AccountStorageOps
	logger         *zap.SugaredLogger
}

// AccountStorageOps defines the account storage operations needed by the
// service. Defined here (consumer package) following Interface
// Segregation Principle; storage.AccountStore satisfies it.
type AccountStorageOps interface {
	InsertAccount(ctx context.Context, username, password string) (int64, error)
	GetAccountByID(ctx context.Context, accountID int64) (*core.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*core.Account, error)
}

// NewAccountService creates a new AccountService instance.
//
// DESIGN NOTE: Constructor validates required dependencies to fail fast.
func NewAccountService(accountStorage AccountStorageOps, logger *zap.SugaredLogger) *AccountServiceImpl {
	if accountStorage == nil {
		panic("accountStorage is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &AccountServiceImpl{
		accountStorage: accountStorage,
		logger:         logger,
	}
}

// Register validates and persists a new account.
//
// BUSINESS LOGIC (in order, short-circuiting on first failure):
// 1. Reject blank username
// 2. Reject password shorter than core.MinPasswordLength
// 3. Reject when the username is already taken (fast-path lookup)
// 4. Persist; the UNIQUE constraint on username is the authoritative
//    duplicate check, so a constraint violation on insert is still a
//    validation rejection, not a storage fault
//
// Side effects: exactly one lookup + at most one insert. No retries.
func (s *AccountServiceImpl) Register(ctx context.Context, candidate *core.Account) (*core.Account, error) {
	if candidate == nil {
		return nil, fmt.Errorf("%w: account is required", ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if candidate.HasBlankUsername() {
		s.logger.Warnw("Registration rejected", "reason", "blank username")
		return nil, fmt.Errorf("%w: username is blank", ErrValidation)
	}
	if utf8.RuneCountInString(candidate.Password) < core.MinPasswordLength {
		s.logger.Warnw("Registration rejected",
			"username", util.SanitizeLogValue(candidate.Username),
			"reason", "password too short")
		return nil, fmt.Errorf("%w: password shorter than %d characters",
			ErrValidation, core.MinPasswordLength)
	}

	// Fast-path duplicate check. Two concurrent registrations can both
	// pass it; the UNIQUE constraint below settles the race.
	existing, err := s.accountStorage.GetAccountByUsername(ctx, candidate.Username)
	if err != nil && !errors.Is(err, storage.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		s.logger.Warnw("Registration rejected",
			"username", util.SanitizeLogValue(candidate.Username),
			"reason", "username taken")
		metrics.Registrations.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: username already exists", ErrValidation)
	}

	id, err := s.accountStorage.InsertAccount(ctx, candidate.Username, candidate.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			metrics.Registrations.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: username already exists", ErrValidation)
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Infow("Registered new account",
		"account_id", id,
		"username", util.SanitizeLogValue(candidate.Username))
	metrics.Registrations.WithLabelValues("created").Inc()

	return &core.Account{
		ID:       id,
		Username: candidate.Username,
		Password: candidate.Password,
	}, nil
}

// Login verifies credentials against the stored account.
//
// The password comparison is byte-exact; this store keeps passwords as
// submitted. Exactly one lookup per call, no retries.
func (s *AccountServiceImpl) Login(ctx context.Context, credentials *core.Account) (*core.Account, error) {
	if credentials == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if credentials.HasBlankUsername() || credentials.HasBlankPassword() {
		s.logger.Warnw("Login rejected", "reason", "blank username or password")
		metrics.Logins.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidCredentials
	}

	stored, err := s.accountStorage.GetAccountByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			s.logger.Infow("Login rejected",
				"username", util.SanitizeLogValue(credentials.Username))
			metrics.Logins.WithLabelValues("rejected").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if stored.Password != credentials.Password {
		s.logger.Infow("Login rejected",
			"username", util.SanitizeLogValue(credentials.Username))
		metrics.Logins.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidCredentials
	}

	s.logger.Infow("Login successful", "account_id", stored.ID)
	metrics.Logins.WithLabelValues("success").Inc()
	return stored, nil
}

// Exists reports whether an account with the given ID is present.
func (s *AccountServiceImpl) Exists(ctx context.Context, accountID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context cancelled: %w", err)
	}

	_, err := s.accountStorage.GetAccountByID(ctx, accountID)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check account %d: %w", accountID, err)
	}

	return true, nil
}

var _ core.AccountService = (*AccountServiceImpl)(nil)
