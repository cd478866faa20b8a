// Package api declares the ops HTTP surface: registration, leaderboard
// queries, stats and health/metrics exposition.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/riftwatch/riftwatch/internal/domain/leaderboard"
	"github.com/riftwatch/riftwatch/internal/domain/model"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Register resolves and tracks a "Name#Tag" riot id.
	Register(ctx context.Context, riotID string) (*model.Player, error)

	// Leaderboard returns ordered rows for one queue.
	Leaderboard(ctx context.Context, queue string, limit int) ([]leaderboard.Row, error)
}

// StatsProvider exposes service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the ops API.
type Server struct {
	registerHandler    *RegisterHandler
	leaderboardHandler *LeaderboardHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		registerHandler:    NewRegisterHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		statsHandler:       NewStatsHandler(stats),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/register", MetricsMiddleware(s.registerHandler.HandleRegister, "register"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
