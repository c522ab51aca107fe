// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
)

// ErrNotFound is returned by Get and SetField when no session document
// exists for the given id.
var ErrNotFound = errors.New("session not found")

// Top-level session document fields addressable via SetField.
const (
	FieldStatus       = "status"
	FieldCurrentRound = "current_round"
	FieldPlayers      = "players"
	FieldRoundResults = "round_results"
)

// CorruptStateError reports a session document that violates a structural
// invariant (e.g. a field that no longer decodes). It is fatal to the
// lifecycle run that observes it, and only to that run.
type CorruptStateError struct {
	SessionID string
	Reason    string
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt session state for %s: %s", e.SessionID, e.Reason)
}

// Store is the session document store. Fields are read and overwritten
// whole; there is no partial-document transaction guarantee, so callers
// must tolerate interleaving with other field writes (last writer wins).
type Store interface {
	// Create inserts a new session in the waiting state with currentRound 1
	// and empty players/results.
	Create(ctx context.Context, id string, totalRounds int) error
	// Get returns a copy of the session document, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)
	// SetField overwrites one top-level field of the document.
	SetField(ctx context.Context, id, field string, value interface{}) error
	// Delete removes the session document. Deleting an absent session is
	// not an error.
	Delete(ctx context.Context, id string) error
}

// NewSession builds the initial document shared by all Store
// implementations.
func NewSession(id string, totalRounds int) *models.Session {
	return &models.Session{
		ID:           id,
		Status:       models.StatusWaiting,
		TotalRounds:  totalRounds,
		CurrentRound: 1,
		Players:      map[string]*models.Player{},
		RoundResults: map[string]*models.RoundResult{},
	}
}
