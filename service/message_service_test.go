package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"murmur/core"
	"murmur/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// MockMessageStorage is a mock implementation of MessageStorageOps.
type MockMessageStorage struct {
	mock.Mock
}

func (m *MockMessageStorage) InsertMessage(ctx context.Context, authorID int64, text string, postedAtEpoch int64) (int64, error) {
	args := m.Called(ctx, authorID, text, postedAtEpoch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageStorage) GetMessageByID(ctx context.Context, messageID int64) (*core.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Message), args.Error(1)
}

func (m *MockMessageStorage) GetAllMessages(ctx context.Context) ([]core.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.Message), args.Error(1)
}

func (m *MockMessageStorage) GetMessagesByAuthor(ctx context.Context, accountID int64) ([]core.Message, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.Message), args.Error(1)
}

func (m *MockMessageStorage) UpdateMessageText(ctx context.Context, messageID int64, newText string) error {
	args := m.Called(ctx, messageID, newText)
	return args.Error(0)
}

func (m *MockMessageStorage) DeleteMessage(ctx context.Context, messageID int64) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// MockAccountChecker is a mock implementation of core.AccountChecker.
type MockAccountChecker struct {
	mock.Mock
}

func (m *MockAccountChecker) Exists(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Test Helpers
// ============================================================================

func setupMessageService() (*MessageServiceImpl, *MockMessageStorage, *MockAccountChecker) {
	messageStorage := new(MockMessageStorage)
	accounts := new(MockAccountChecker)
	logger := zap.NewNop().Sugar()

	service := NewMessageService(messageStorage, accounts, logger)
	return service, messageStorage, accounts
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewMessageService_Success(t *testing.T) {
	messageStorage := new(MockMessageStorage)
	accounts := new(MockAccountChecker)
	logger := zap.NewNop().Sugar()

	service := NewMessageService(messageStorage, accounts, logger)

	assert.NotNil(t, service)
	assert.Equal(t, messageStorage, service.messageStorage)
	assert.Equal(t, accounts, service.accounts)
}

func TestNewMessageService_PanicsOnNilDependencies(t *testing.T) {
	messageStorage := new(MockMessageStorage)
	accounts := new(MockAccountChecker)
	logger := zap.NewNop().Sugar()

	assert.Panics(t, func() { NewMessageService(nil, accounts, logger) })
	assert.Panics(t, func() { NewMessageService(messageStorage, nil, logger) })
	assert.Panics(t, func() { NewMessageService(messageStorage, accounts, nil) })
}

// ============================================================================
// Create Tests
// ============================================================================

func TestCreate_Success(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	accounts.On("Exists", ctx, int64(1)).Return(true, nil)
	messageStorage.On("InsertMessage", ctx, int64(1), "hello world", int64(1669947792)).
		Return(int64(10), nil)

	message, err := service.Create(ctx, &core.Message{
		PostedBy:      1,
		Text:          "hello world",
		PostedAtEpoch: 1669947792,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), message.ID)
	assert.Equal(t, int64(1), message.PostedBy)
	assert.Equal(t, "hello world", message.Text)
	assert.Equal(t, int64(1669947792), message.PostedAtEpoch, "Timestamp comes from the caller, never generated here")
	messageStorage.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestCreate_BlankText(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		message, err := service.Create(ctx, &core.Message{PostedBy: 1, Text: text})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, message)
	}

	// Text validation precedes the author check
	accounts.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	messageStorage.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_TextTooLong(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	message, err := service.Create(ctx, &core.Message{
		PostedBy: 1,
		Text:     strings.Repeat("x", core.MaxMessageTextLength+1),
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
	messageStorage.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_TextExactlyMaxLength(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	text := strings.Repeat("x", core.MaxMessageTextLength)
	accounts.On("Exists", ctx, int64(1)).Return(true, nil)
	messageStorage.On("InsertMessage", ctx, int64(1), text, int64(0)).Return(int64(10), nil)

	message, err := service.Create(ctx, &core.Message{PostedBy: 1, Text: text})

	assert.NoError(t, err, "255 characters is the inclusive maximum")
	assert.Equal(t, int64(10), message.ID)
}

func TestCreate_TextLengthCountsCharacters(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	// 100 CJK characters are 300 bytes; the limit counts characters
	text := strings.Repeat("世", 100)
	accounts.On("Exists", ctx, int64(1)).Return(true, nil)
	messageStorage.On("InsertMessage", ctx, int64(1), text, int64(0)).Return(int64(11), nil)

	message, err := service.Create(ctx, &core.Message{PostedBy: 1, Text: text})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), message.ID)

	// 256 two-byte characters still exceed the limit
	message, err = service.Create(ctx, &core.Message{
		PostedBy: 1,
		Text:     strings.Repeat("é", core.MaxMessageTextLength+1),
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
}

func TestCreate_AuthorDoesNotExist(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	accounts.On("Exists", ctx, int64(9999)).Return(false, nil)

	message, err := service.Create(ctx, &core.Message{PostedBy: 9999, Text: "hello"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
	// The contract: reject WITHOUT persisting when the author is unknown
	messageStorage.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_AuthorCheckFault(t *testing.T) {
	service, messageStorage, accounts := setupMessageService()
	ctx := context.Background()

	accounts.On("Exists", ctx, int64(1)).Return(false, errors.New("disk on fire"))

	message, err := service.Create(ctx, &core.Message{PostedBy: 1, Text: "hello"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
	messageStorage.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_NilMessage(t *testing.T) {
	service, _, _ := setupMessageService()

	message, err := service.Create(context.Background(), nil)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
}

// ============================================================================
// Read Tests
// ============================================================================

func TestGetByID_Success(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	expected := &core.Message{ID: 10, PostedBy: 1, Text: "hello", PostedAtEpoch: 100}
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(expected, nil)

	message, err := service.GetByID(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, expected, message)
}

func TestGetByID_NotFound(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	messageStorage.On("GetMessageByID", ctx, int64(404)).Return(nil, storage.ErrMessageNotFound)

	message, err := service.GetByID(ctx, 404)

	assert.ErrorIs(t, err, storage.ErrMessageNotFound)
	assert.Nil(t, message)
}

func TestGetAll(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	expected := []core.Message{
		{ID: 1, PostedBy: 1, Text: "first"},
		{ID: 2, PostedBy: 1, Text: "second"},
	}
	messageStorage.On("GetAllMessages", ctx).Return(expected, nil)

	messages, err := service.GetAll(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, messages)
}

func TestGetAllByAuthor_Idempotent(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	expected := []core.Message{{ID: 1, PostedBy: 7, Text: "hi"}}
	messageStorage.On("GetMessagesByAuthor", ctx, int64(7)).Return(expected, nil).Twice()

	first, err := service.GetAllByAuthor(ctx, 7)
	assert.NoError(t, err)
	second, err := service.GetAllByAuthor(ctx, 7)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "Repeated reads with no writes in between return equal sequences")
	messageStorage.AssertExpectations(t)
}

func TestGetAllByAuthor_Empty(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	messageStorage.On("GetMessagesByAuthor", ctx, int64(9999)).Return([]core.Message{}, nil)

	messages, err := service.GetAllByAuthor(ctx, 9999)

	assert.NoError(t, err)
	assert.Empty(t, messages)
}

// ============================================================================
// UpdateText Tests
// ============================================================================

func TestUpdateText_Success(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	existing := &core.Message{ID: 10, PostedBy: 1, Text: "old", PostedAtEpoch: 100}
	updated := &core.Message{ID: 10, PostedBy: 1, Text: "new text", PostedAtEpoch: 100}

	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(existing, nil).Once()
	messageStorage.On("UpdateMessageText", ctx, int64(10), "new text").Return(nil)
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(updated, nil).Once()

	message, err := service.UpdateText(ctx, 10, "new text")

	assert.NoError(t, err)
	assert.Equal(t, "new text", message.Text)
	assert.Equal(t, int64(1), message.PostedBy, "Author untouched by text replacement")
	assert.Equal(t, int64(100), message.PostedAtEpoch, "Timestamp untouched by text replacement")
	messageStorage.AssertExpectations(t)
}

func TestUpdateText_NotFound(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	messageStorage.On("GetMessageByID", ctx, int64(404)).Return(nil, storage.ErrMessageNotFound)

	message, err := service.UpdateText(ctx, 404, "new text")

	assert.ErrorIs(t, err, storage.ErrMessageNotFound)
	assert.Nil(t, message)
	messageStorage.AssertNotCalled(t, "UpdateMessageText", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateText_BlankText(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	existing := &core.Message{ID: 10, PostedBy: 1, Text: "old", PostedAtEpoch: 100}
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(existing, nil)

	message, err := service.UpdateText(ctx, 10, "   ")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
	// Stored text must be left unchanged
	messageStorage.AssertNotCalled(t, "UpdateMessageText", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateText_TooLong(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	existing := &core.Message{ID: 10, PostedBy: 1, Text: "old", PostedAtEpoch: 100}
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(existing, nil)

	message, err := service.UpdateText(ctx, 10, strings.Repeat("x", core.MaxMessageTextLength+1))

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, message)
	messageStorage.AssertNotCalled(t, "UpdateMessageText", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestDelete_ReturnsPreDeletionSnapshot(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	snapshot := &core.Message{ID: 10, PostedBy: 1, Text: "last words", PostedAtEpoch: 100}
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(snapshot, nil)
	messageStorage.On("DeleteMessage", ctx, int64(10)).Return(nil)

	message, err := service.Delete(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, snapshot, message)
	messageStorage.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	messageStorage.On("GetMessageByID", ctx, int64(404)).Return(nil, storage.ErrMessageNotFound)

	message, err := service.Delete(ctx, 404)

	assert.ErrorIs(t, err, storage.ErrMessageNotFound)
	assert.Nil(t, message)
	messageStorage.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestDelete_StorageFault(t *testing.T) {
	service, messageStorage, _ := setupMessageService()
	ctx := context.Background()

	snapshot := &core.Message{ID: 10, PostedBy: 1, Text: "doomed", PostedAtEpoch: 100}
	messageStorage.On("GetMessageByID", ctx, int64(10)).Return(snapshot, nil)
	messageStorage.On("DeleteMessage", ctx, int64(10)).Return(errors.New("disk on fire"))

	message, err := service.Delete(ctx, 10)

	assert.Error(t, err)
	assert.Nil(t, message)
}
