package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"murmur/core"
	"murmur/metrics"

	"go.uber.org/zap"
)

// MessageServiceImpl implements core.MessageService.
//
// It depends on the account service (not account storage directly) for
// the author-existence check, so the author rule lives in exactly one
// place.
type MessageServiceImpl struct {
	messageStorage MessageStorageOps
	accounts       core.AccountChecker
	logger         *zap.SugaredLogger
}

// MessageStorageOps defines the message storage operations needed by the
// service. Defined here (consumer package) following Interface
// Segregation Principle; storage.MessageStore satisfies it.
type MessageStorageOps interface {
	InsertMessage(ctx context.Context, authorID int64, text string, postedAtEpoch int64) (int64, error)
	GetMessageByID(ctx context.Context, messageID int64) (*core.Message, error)
	GetAllMessages(ctx context.Context) ([]core.Message, error)
	GetMessagesByAuthor(ctx context.Context, accountID int64) ([]core.Message, error)
	UpdateMessageText(ctx context.Context, messageID int64, newText string) error
	DeleteMessage(ctx context.Context, messageID int64) error
}

// NewMessageService creates a new MessageService instance.
//
// DESIGN NOTE: Constructor validates required dependencies to fail fast.
func NewMessageService(messageStorage MessageStorageOps, accounts core.AccountChecker, logger *zap.SugaredLogger) *MessageServiceImpl {
	if messageStorage == nil {
		panic("messageStorage is required")
	}
	if accounts == nil {
		panic("accounts is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &MessageServiceImpl{
		messageStorage: messageStorage,
		accounts:       accounts,
		logger:         logger,
	}
}

// Create validates and persists a new message.
//
// BUSINESS LOGIC (in order, short-circuiting on first failure):
// 1. Reject blank text
// 2. Reject text longer than core.MaxMessageTextLength
// 3. Reject when the author account does not exist - WITHOUT calling
//    message storage, so no orphaned row is ever written
// 4. Persist and return the stored message with its assigned ID
//
// The timestamp is taken from the candidate as-is; this layer never
// generates it.
func (s *MessageServiceImpl) Create(ctx context.Context, candidate *core.Message) (*core.Message, error) {
	if candidate == nil {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if err := validateMessageText(candidate.Text); err != nil {
		s.logger.Warnw("Message creation rejected", "error", err)
		return nil, err
	}

	exists, err := s.accounts.Exists(ctx, candidate.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to verify author: %w", err)
	}
	if !exists {
		s.logger.Warnw("Message creation rejected",
			"posted_by", candidate.PostedBy,
			"reason", "author does not exist")
		return nil, fmt.Errorf("%w: author account %d does not exist", ErrValidation, candidate.PostedBy)
	}

	id, err := s.messageStorage.InsertMessage(ctx, candidate.PostedBy, candidate.Text, candidate.PostedAtEpoch)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Infow("Created message",
		"message_id", id,
		"posted_by", candidate.PostedBy)
	metrics.MessageOperations.WithLabelValues("create").Inc()

	return &core.Message{
		ID:            id,
		PostedBy:      candidate.PostedBy,
		Text:          candidate.Text,
		PostedAtEpoch: candidate.PostedAtEpoch,
	}, nil
}

// GetByID retrieves a single message; pure lookup, no validation.
// Returns storage.ErrMessageNotFound when absent.
func (s *MessageServiceImpl) GetByID(ctx context.Context, messageID int64) (*core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	message, err := s.messageStorage.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// GetAll retrieves every message in insertion order.
func (s *MessageServiceImpl) GetAll(ctx context.Context) ([]core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	messages, err := s.messageStorage.GetAllMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}

	s.logger.Debugw("Retrieved messages", "count", len(messages))
	return messages, nil
}

// GetAllByAuthor retrieves all messages posted by one account, in
// insertion order. An unknown account yields an empty slice, not an
// error.
func (s *MessageServiceImpl) GetAllByAuthor(ctx context.Context, accountID int64) ([]core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	messages, err := s.messageStorage.GetMessagesByAuthor(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages for account %d: %w", accountID, err)
	}

	s.logger.Debugw("Retrieved messages by author",
		"account_id", accountID,
		"count", len(messages))
	return messages, nil
}

// UpdateText replaces the text of an existing message.
//
// BUSINESS LOGIC:
// 1. Reject when no message with the ID exists
// 2. Reject blank or oversized replacement text
// 3. Persist, then read back the full record (read-after-write) so the
//    caller sees exactly what is stored
func (s *MessageServiceImpl) UpdateText(ctx context.Context, messageID int64, newText string) (*core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if _, err := s.messageStorage.GetMessageByID(ctx, messageID); err != nil {
		s.logger.Warnw("Message update rejected", "message_id", messageID, "error", err)
		return nil, err
	}

	if err := validateMessageText(newText); err != nil {
		s.logger.Warnw("Message update rejected", "message_id", messageID, "error", err)
		return nil, err
	}

	if err := s.messageStorage.UpdateMessageText(ctx, messageID, newText); err != nil {
		return nil, fmt.Errorf("failed to update message %d: %w", messageID, err)
	}

	updated, err := s.messageStorage.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back updated message %d: %w", messageID, err)
	}

	s.logger.Infow("Updated message", "message_id", messageID)
	metrics.MessageOperations.WithLabelValues("update").Inc()
	return updated, nil
}

// Delete removes a message and returns the snapshot as it was
// immediately before removal. Returns storage.ErrMessageNotFound when
// absent.
func (s *MessageServiceImpl) Delete(ctx context.Context, messageID int64) (*core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	snapshot, err := s.messageStorage.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.messageStorage.DeleteMessage(ctx, messageID); err != nil {
		return nil, fmt.Errorf("failed to delete message %d: %w", messageID, err)
	}

	s.logger.Infow("Deleted message", "message_id", messageID)
	metrics.MessageOperations.WithLabelValues("delete").Inc()
	return snapshot, nil
}

// validateMessageText enforces the text rules shared by Create and
// UpdateText: non-blank, at most core.MaxMessageTextLength characters.
func validateMessageText(text string) error {
	m := core.Message{Text: text}
	if m.HasBlankText() {
		return fmt.Errorf("%w: message text is blank", ErrValidation)
	}
	if m.TextTooLong() {
		return fmt.Errorf("%w: message text too long: %d characters (max %d)",
			ErrValidation, utf8.RuneCountInString(text), core.MaxMessageTextLength)
	}
	return nil
}

var _ core.MessageService = (*MessageServiceImpl)(nil)
