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

// SQLiteMessageStorage implements MessageStore using SQLite.
type SQLiteMessageStorage struct {
	sqlite *SQLite
	logger *zap.SugaredLogger
}

// NewSQLiteMessageStorage creates a new SQLite-based message storage.
func NewSQLiteMessageStorage(sqlite *SQLite, logger *zap.SugaredLogger) *SQLiteMessageStorage {
	return &SQLiteMessageStorage{
		sqlite: sqlite,
		logger: logger,
	}
}

// InsertMessage persists a new message and returns its assigned ID.
func (sms *SQLiteMessageStorage) InsertMessage(ctx context.Context, authorID int64, text string, postedAtEpoch int64) (int64, error) {
	result, err := sms.sqlite.WriteDB.ExecContext(ctx,
		"INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES (?, ?, ?)",
		authorID, text, postedAtEpoch,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return 0, ErrAuthorNotFound
		}
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned message id: %w", err)
	}

	sms.logger.Infow("Created message", "message_id", id, "posted_by", authorID)
	return id, nil
}

// GetMessageByID retrieves a message by ID.
func (sms *SQLiteMessageStorage) GetMessageByID(ctx context.Context, messageID int64) (*core.Message, error) {
	var message core.Message
	err := sms.sqlite.ReadDB.QueryRowContext(ctx,
		"SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE message_id = ?",
		messageID,
	).Scan(&message.ID, &message.PostedBy, &message.Text, &message.PostedAtEpoch)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message %d: %w", messageID, err)
	}

	return &message, nil
}

// GetAllMessages retrieves every message in insertion order.
func (sms *SQLiteMessageStorage) GetAllMessages(ctx context.Context) ([]core.Message, error) {
	return sms.queryMessages(ctx,
		"SELECT message_id, posted_by, message_text, time_posted_epoch FROM message ORDER BY message_id ASC",
	)
}

// GetMessagesByAuthor retrieves all messages posted by one account,
// in insertion order.
func (sms *SQLiteMessageStorage) GetMessagesByAuthor(ctx context.Context, accountID int64) ([]core.Message, error) {
	return sms.queryMessages(ctx,
		"SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE posted_by = ? ORDER BY message_id ASC",
		accountID,
	)
}

// queryMessages runs a message SELECT and scans all rows.
func (sms *SQLiteMessageStorage) queryMessages(ctx context.Context, query string, args ...interface{}) ([]core.Message, error) {
	rows, err := sms.sqlite.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []core.Message{}
	for rows.Next() {
		var message core.Message
		if err := rows.Scan(&message.ID, &message.PostedBy, &message.Text, &message.PostedAtEpoch); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// UpdateMessageText replaces the text of an existing message.
func (sms *SQLiteMessageStorage) UpdateMessageText(ctx context.Context, messageID int64, newText string) error {
	result, err := sms.sqlite.WriteDB.ExecContext(ctx,
		"UPDATE message SET message_text = ? WHERE message_id = ?",
		newText, messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update message %d: %w", messageID, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	sms.logger.Infow("Updated message text", "message_id", messageID)
	return nil
}

// DeleteMessage removes a message.
func (sms *SQLiteMessageStorage) DeleteMessage(ctx context.Context, messageID int64) error {
	result, err := sms.sqlite.WriteDB.ExecContext(ctx,
		"DELETE FROM message WHERE message_id = ?",
		messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete message %d: %w", messageID, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	sms.logger.Infow("Deleted message", "message_id", messageID)
	return nil
}

var _ MessageStore = (*SQLiteMessageStorage)(nil)
