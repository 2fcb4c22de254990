// Package api exposes the Murmur social backend over HTTP.
//
// Routes follow the service contracts in core: account registration and
// login, message CRUD, and per-account message timelines. Handlers decode
// the request, delegate to the services, and translate service errors
// into status codes. Business rules live in the service layer, never here.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"murmur/config"
	"murmur/core"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterEntry holds a rate limiter with last seen time
type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// API holds the API server
type API struct {
	router         *mux.Router
	server         *http.Server
	accountService core.AccountService
	messageService core.MessageService
	config         *config.Config
	logger         *zap.SugaredLogger
	rateLimiters   map[string]*rateLimiterEntry
	rateLimitersMu sync.Mutex
	stopCh         chan struct{}
}

// NewAPI creates a new API server
func NewAPI(accountService core.AccountService, messageService core.MessageService, config *config.Config, logger *zap.SugaredLogger) *API {
	api := &API{
		router:         mux.NewRouter(),
		accountService: accountService,
		messageService: messageService,
		config:         config,
		logger:         logger,
		rateLimiters:   make(map[string]*rateLimiterEntry),
		stopCh:         make(chan struct{}),
	}
	api.setupRoutes()
	go api.cleanupRateLimiters()
	return api
}

// setupRoutes sets up the API routes
func (a *API) setupRoutes() {
	a.router.Use(a.corsMiddleware)
	a.router.Use(a.rateLimitMiddleware)
	a.router.Use(a.requestLogMiddleware)

	a.router.HandleFunc("/register", a.registerAccount).Methods("POST")
	a.router.HandleFunc("/login", a.login).Methods("POST")
	a.router.HandleFunc("/messages", a.createMessage).Methods("POST")
	a.router.HandleFunc("/messages", a.getAllMessages).Methods("GET")
	a.router.HandleFunc("/messages/{message_id}", a.getMessageByID).Methods("GET")
	a.router.HandleFunc("/messages/{message_id}", a.updateMessage).Methods("PATCH")
	a.router.HandleFunc("/messages/{message_id}", a.deleteMessage).Methods("DELETE")
	a.router.HandleFunc("/accounts/{account_id}/messages", a.getMessagesByAccount).Methods("GET")
	a.router.HandleFunc("/health", a.healthCheck).Methods("GET")
	a.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the API server on the given listen address
func (a *API) Start(addr string) error {
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.router,
	}
	return a.server.ListenAndServe()
}

// StartTLS starts the API server with TLS
func (a *API) StartTLS(addr, certFile, keyFile string) error {
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.router,
	}
	return a.server.ListenAndServeTLS(certFile, keyFile)
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	close(a.stopCh)
	if a.server != nil {
		return a.server.Shutdown(ctx)
	}
	return nil
}
