package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectn/internal/api/apierr"
	"github.com/mcoot/connectn/internal/api/handler"
	"github.com/mcoot/connectn/internal/api/middleware"
	"github.com/mcoot/connectn/internal/api/response"
	"github.com/mcoot/connectn/internal/services/history"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	HistoryService history.ServiceInterface
}

const apiPrefix = "/api/v1"

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	historyHandler := handler.NewHistoryHandler(cfg.HistoryService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Full paths rather than a /api/v1 subrouter, which loses method mismatches
	r.HandleFunc(apiPrefix+"/matches", historyHandler.List).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/matches/{id}", historyHandler.Get).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/matches/{id}", historyHandler.Delete).Methods(http.MethodDelete)
	r.HandleFunc(apiPrefix+"/stats", historyHandler.Stats).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc(apiPrefix+"/health", healthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
