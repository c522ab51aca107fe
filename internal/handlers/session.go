// internal/handlers/session.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
)

// CreateGameHandler creates a new session and returns its id plus the join
// URL and QR code clients display to players.
func CreateGameHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			TotalRounds *int `json:"total_rounds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}
		if req.TotalRounds == nil || *req.TotalRounds <= 0 {
			http.Error(w, "'total_rounds' must be a positive integer", http.StatusBadRequest)
			return
		}

		sess, err := s.Service.CreateSession(r.Context(), *req.TotalRounds)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		sessionURL, qrBase64, err := sessionQRCode(s.Cfg.WebAppURL, sess.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"game_id":        sess.ID,
			"session_url":    sessionURL,
			"qr_code_base64": qrBase64,
			"message":        "Game session successfully created.",
		})
	}
}

// JoinGameHandler registers a player on a waiting session.
func JoinGameHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID string `json:"game_id"`
			Name   string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}

		player, err := s.Service.Join(r.Context(), req.GameID, req.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"player_id": player.ID,
		})
	}
}

// StartGameHandler moves a waiting session into its first round and spawns
// the lifecycle run.
func StartGameHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID string `json:"game_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}

		if err := s.Service.Start(r.Context(), req.GameID); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Game started.",
			"status":  string(models.StatusInProgress),
		})
	}
}

// StatusHandler returns the session status. With ?wait=1&last=<status> it
// long-polls until the status moves away from last, capped at the
// configured ceiling; at the cap the current status is returned.
func StatusHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		gameID := r.URL.Query().Get("game_id")
		if gameID == "" {
			http.Error(w, "missing game_id", http.StatusBadRequest)
			return
		}

		var (
			status models.Status
			err    error
		)
		if r.URL.Query().Get("wait") != "" {
			last := models.Status(r.URL.Query().Get("last"))
			status, err = s.Service.AwaitStatusChange(r.Context(), gameID, last, s.Cfg.PollCeiling)
		} else {
			status, err = s.Service.Status(r.Context(), gameID)
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"game_id": gameID,
			"status":  string(status),
		})
	}
}

// ResultsHandler returns all rounds scored so far; valid mid-game.
func ResultsHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		gameID := r.URL.Query().Get("game_id")
		if gameID == "" {
			http.Error(w, "missing game_id", http.StatusBadRequest)
			return
		}

		view, err := s.Service.Results(r.Context(), gameID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
