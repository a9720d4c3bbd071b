package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/models"
	"github.com/hangarlabs/simwatch/internal/vars"
)

// handleStatus returns the most recent status record per server channel.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	statuses, err := s.storage.LatestServerStatuses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch server statuses")
		http.Error(w, "Database Error", http.StatusInternalServerError)
		return
	}

	if statuses == nil {
		statuses = []models.ServerStatus{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statuses)
}

// handleLeaderboards returns the most recent leaderboard per channel.
func (s *Server) handleLeaderboards(w http.ResponseWriter, _ *http.Request) {
	boards, err := s.storage.LatestLeaderboards()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch leaderboards")
		http.Error(w, "Database Error", http.StatusInternalServerError)
		return
	}

	if boards == nil {
		boards = []models.Leaderboard{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(boards)
}

// handleHealth reports liveness and build metadata.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"build":  vars.Info(),
	})
}

// handlePruneHistory deletes snapshots older than the requested duration.
// Query params: ?older=720h
func (s *Server) handlePruneHistory(w http.ResponseWriter, r *http.Request) {
	olderStr := r.URL.Query().Get("older")
	if olderStr == "" {
		http.Error(w, "Missing older param", http.StatusBadRequest)
		return
	}

	older, err := time.ParseDuration(olderStr)
	if err != nil || older <= 0 {
		http.Error(w, "Invalid older param", http.StatusBadRequest)
		return
	}

	deleted, err := s.storage.PruneBefore(time.Now().Add(-older))
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune history")
		http.Error(w, "Database Error", http.StatusInternalServerError)
		return
	}

	log.Info().Int64("deleted", deleted).Str("older", olderStr).Msg("History pruned via API")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "deleted": deleted})
}
