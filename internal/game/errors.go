// internal/game/errors.go
package game

import "errors"

var (
	// ErrPlayerNotFound is returned when an operation names a player id the
	// session does not contain. Session-level not-found is store.ErrNotFound.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidStateTransition is returned when an operation's source-state
	// guard does not hold (e.g. start on a session that already started).
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrInsufficientPlayers is returned by Score when fewer than 2
	// submissions are present; a single-player round has no contest.
	ErrInsufficientPlayers = errors.New("not enough players to score a round")

	// ErrNumberOutOfRange is returned by Submit when the value falls outside
	// the configured submission range.
	ErrNumberOutOfRange = errors.New("number outside the valid range")
)
