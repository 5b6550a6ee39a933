// Package api provides the HTTP server for the Dev vs Byte engine.
// It exposes the game state and actions as a small JSON API for the
// desktop shell and the CLI.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/game"
	"github.com/devbyte-game/devbyte/internal/infra/sqlite"
)

// Server is the game HTTP API server.
type Server struct {
	session        *game.Session
	db             *sqlite.DB // leaderboard queries; may be nil
	metricsEnabled bool
}

// NewServer creates a new API server over a running session.
func NewServer(session *game.Session, db *sqlite.DB) *Server {
	return &Server{session: session, db: db}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/settle", s.handleSettle)
		r.Post("/faction", s.handleSelectFaction)
		r.Post("/reset", s.handleReset)
		r.Post("/topup", s.handleTopUp)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/apps", s.handleCatalogApps)
			r.Get("/tools", s.handleCatalogTools)
			r.Get("/targets", s.handleCatalogTargets)
		})

		r.Route("/builds", func(r chi.Router) {
			r.Post("/", s.handleBeginBuild)
			r.Get("/current", s.handleCurrentBuild)
			r.Post("/cancel", s.handleCancelBuild)
		})
		r.Post("/security/upgrade", s.handleSecurityUpgrade)

		r.Post("/hacks", s.handleResolveHack)

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", s.handleListCases)
			r.Post("/", s.handleFileCase)
			r.Post("/{id}/resolve", s.handleResolveCase)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/{id}/complete", s.handleCompleteTask)
		})

		r.Get("/leaderboard", s.handleLeaderboard)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeGameError maps a game error to its HTTP status.
func writeGameError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// statusFor picks the HTTP status for a domain error. Affordability
// failures get 402, missing things 404, rule conflicts 409, everything
// else is a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrUnknownTask),
		errors.Is(err, domain.ErrUnknownCase),
		errors.Is(err, domain.ErrNoActiveBuild):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBuildInFlight),
		errors.Is(err, domain.ErrFactionAlreadySet),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrCaseResolved),
		errors.Is(err, domain.ErrSecurityMaxed),
		errors.Is(err, domain.ErrItemLocked):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// corsMiddleware adds CORS headers for the local desktop shell.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
