package bootstrap

import (
	"fmt"
	"os"

	"murmur/service"
	"murmur/storage"

	"go.uber.org/zap"
)

// StorageComponents holds all storage-related components.
type StorageComponents struct {
	SQLite         *storage.SQLite
	AccountStorage *storage.SQLiteAccountStorage
	MessageStorage *storage.SQLiteMessageStorage
}

// ServiceComponents holds the business service layer.
type ServiceComponents struct {
	AccountService *service.AccountServiceImpl
	MessageService *service.MessageServiceImpl
}

// InitSQLite initializes SQLite connection.
func InitSQLite(dirs DataDirectories, sugar *zap.SugaredLogger) (*storage.SQLite, error) {
	sqlite, err := storage.NewSQLite(dirs.SQLite, sugar)
	if err != nil {
		errMsg := ClassifySQLiteError(err, dirs.SQLite)
		fmt.Fprintf(os.Stderr, "\n========================================\n")
		fmt.Fprintf(os.Stderr, "FATAL: SQLite Initialization Failed\n")
		fmt.Fprintf(os.Stderr, "========================================\n")
		fmt.Fprintf(os.Stderr, "%s\n", errMsg)
		fmt.Fprintf(os.Stderr, "========================================\n\n")
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}

	sugar.Info("SQLite initialized successfully")
	return sqlite, nil
}

// InitStorage wires the storage components on top of an open SQLite handle.
func InitStorage(sqlite *storage.SQLite, sugar *zap.SugaredLogger) *StorageComponents {
	return &StorageComponents{
		SQLite:         sqlite,
		AccountStorage: storage.NewSQLiteAccountStorage(sqlite, sugar),
		MessageStorage: storage.NewSQLiteMessageStorage(sqlite, sugar),
	}
}

// InitServices wires the service layer on top of the storage components.
func InitServices(storages *StorageComponents, sugar *zap.SugaredLogger) *ServiceComponents {
	accountService := service.NewAccountService(storages.AccountStorage, sugar)
	messageService := service.NewMessageService(storages.MessageStorage, accountService, sugar)

	return &ServiceComponents{
		AccountService: accountService,
		MessageService: messageService,
	}
}
