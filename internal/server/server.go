// Package server implements the read-only HTTP API over the stored
// snapshots, plus the admin maintenance endpoint.
package server

import (
	"net/http"
	"time"

	"github.com/hangarlabs/simwatch/internal/config"
	"github.com/hangarlabs/simwatch/internal/storage"
)

// Server holds the dependencies and configuration for the HTTP API.
type Server struct {
	// storage provides read access to the snapshot history.
	storage *storage.Repository

	// authToken is the secret required by the admin endpoints.
	authToken string

	// hardLimitCount/hardLimitWin bound per-IP request rates on the
	// public endpoints.
	hardLimitCount int
	hardLimitWin   time.Duration

	// trustProxy enables X-Forwarded-For handling for deployments behind
	// a reverse proxy.
	trustProxy bool
}

// New creates a Server instance from the API flag group.
func New(store *storage.Repository, cfg config.Server) *Server {
	return &Server{
		storage:        store,
		authToken:      cfg.AuthToken,
		trustProxy:     cfg.TrustProxy,
		hardLimitCount: cfg.HardLimitCount,
		hardLimitWin:   cfg.HardLimitWin,
	}
}

// Run configures the HTTP routes and returns the main handler.
func (s *Server) Run() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/status", s.RateLimitMiddleware(http.HandlerFunc(s.handleStatus)))
	mux.Handle("GET /api/leaderboards", s.RateLimitMiddleware(http.HandlerFunc(s.handleLeaderboards)))
	mux.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))
	mux.Handle("DELETE /api/history", AdminAuthMiddleware(s.authToken, http.HandlerFunc(s.handlePruneHistory)))

	return s.LoggingMiddleware(mux)
}
