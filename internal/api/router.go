package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixelquest/accounts/internal/api/handler"
	"github.com/pixelquest/accounts/internal/api/middleware"
	"github.com/pixelquest/accounts/internal/identity"
	"github.com/pixelquest/accounts/internal/services/account"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	Verifier       identity.Verifier
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AccountService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Verifier)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes
	api.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{user_id}/experience", userHandler.GrantExperience).Methods(http.MethodPost)

	// The current-user route requires a verified bearer token
	me := api.PathPrefix("/users").Subrouter()
	me.Use(authMiddleware)
	me.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet)

	// Auth routes carry the token in the request body
	api.HandleFunc("/auth/verify", userHandler.VerifyAndCreate).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", userHandler.Login).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
