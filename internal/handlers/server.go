// internal/handlers/server.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Adam-Agbaria/numbers-game-server/internal/config"
	"github.com/Adam-Agbaria/numbers-game-server/internal/game"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

// Server aggregates everything the HTTP handlers need.
type Server struct {
	Service *game.Service
	Cfg     *config.Config
	Logger  *log.Logger
}

func NewServer(svc *game.Service, cfg *config.Config, logger *log.Logger) *Server {
	return &Server{Service: svc, Cfg: cfg, Logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP status codes. Every mapped
// error is logged; callers always see a classification, never a silent
// failure.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, game.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidStateTransition):
		status = http.StatusConflict
	case errors.Is(err, game.ErrNumberOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	s.Logger.WithFields(log.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err).Warn("request failed")
	if status == http.StatusInternalServerError {
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
