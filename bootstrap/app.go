package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"murmur/api"
	"murmur/config"

	"go.uber.org/zap"
)

// App represents the Murmur application with all its components.
type App struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	// Storage and services
	Storage  *StorageComponents
	Services *ServiceComponents

	// HTTP
	APIServer *api.API

	// Lifecycle
	serviceWg *sync.WaitGroup
}

// NewApp creates a new application instance and initializes all components.
func NewApp(ctx context.Context) (*App, error) {
	app := &App{
		serviceWg: &sync.WaitGroup{},
	}

	// Initialize a bootstrap logger before config is available
	logger, sugar, err := InitLogger("info")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Sugar = sugar

	sugar.Info("Murmur starting...")

	// Pre-flight checks
	sugar.Info("Running pre-flight checks...")
	if _, err := EnsureDataDirectories(sugar); err != nil {
		return nil, fmt.Errorf("pre-flight check failed: %w", err)
	}

	// Load configuration
	cfg, err := InitConfig(sugar)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// Re-initialize the logger at the configured level
	logger, sugar, err = InitLogger(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Sugar = sugar

	// Use config-based directories
	dirs := DataDirectoriesFromConfig(cfg)

	// Initialize storage
	sqlite, err := InitSQLite(dirs, sugar)
	if err != nil {
		return nil, err
	}
	app.Storage = InitStorage(sqlite, sugar)

	// Initialize services
	app.Services = InitServices(app.Storage, sugar)
	sugar.Info("Services initialized successfully")

	return app, nil
}

// Start starts the API server.
func (a *App) Start(ctx context.Context) error {
	a.APIServer = api.NewAPI(a.Services.AccountService, a.Services.MessageService, a.Config, a.Sugar)

	addr := ":" + strconv.Itoa(a.Config.API.Port)

	a.serviceWg.Add(1)
	go func() {
		defer a.serviceWg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.Sugar.Errorw("API server panicked", "panic", r)
			}
		}()

		var err error
		if a.Config.API.TLS {
			a.Sugar.Infow("Starting API server with TLS", "addr", addr)
			err = a.APIServer.StartTLS(addr, a.Config.API.CertFile, a.Config.API.KeyFile)
		} else {
			a.Sugar.Infow("Starting API server", "addr", addr)
			err = a.APIServer.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Sugar.Errorw("API server stopped unexpectedly", "error", err)
		}
	}()

	return nil
}

// WaitForShutdown blocks until a shutdown signal is received.
func (a *App) WaitForShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	a.Sugar.Info("Shutting down...")

	// Stop the API server first so no new requests reach storage
	if a.APIServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.APIServer.Stop(ctx); err != nil {
			a.Sugar.Errorw("Failed to stop API server", "error", err)
		}
	}

	// Wait for service goroutines
	done := make(chan struct{})
	go func() {
		a.serviceWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		a.Sugar.Info("All service goroutines stopped successfully")
	case <-time.After(15 * time.Second):
		a.Sugar.Warn("Service goroutine shutdown timed out")
	}

	// Close database connections
	if a.Storage != nil && a.Storage.SQLite != nil {
		a.Storage.SQLite.Close()
	}

	a.Sugar.Info("Shutdown complete")
	_ = a.Logger.Sync()
}
