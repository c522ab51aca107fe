// internal/handlers/round.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// SubmitNumberHandler records a player's number for the current round.
// Whether a submission makes the deadline is the lifecycle's call; this
// endpoint only validates and writes.
func SubmitNumberHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID   string `json:"game_id"`
			PlayerID string `json:"player_id"`
			Number   *int   `json:"number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}
		if req.Number == nil {
			http.Error(w, "missing 'number'", http.StatusBadRequest)
			return
		}

		if err := s.Service.Submit(r.Context(), req.GameID, req.PlayerID, *req.Number); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Number submitted",
		})
	}
}
