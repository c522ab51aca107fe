// internal/game/service.go
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

// Service exposes the session operations the HTTP surface needs. It owns no
// state of its own: everything goes through the store, and round
// progression is the Scheduler's job.
type Service struct {
	Store     store.Store
	Scheduler *Scheduler

	MinNumber int
	MaxNumber int
}

// ResultsView is the read model for the results endpoint. Partial results
// mid-game are a valid read.
type ResultsView struct {
	GameID       string                         `json:"game_id"`
	Status       models.Status                  `json:"status"`
	TotalRounds  int                            `json:"total_rounds"`
	CurrentRound int                            `json:"current_round"`
	RoundResults map[string]*models.RoundResult `json:"round_results"`
}

// CreateSession creates a new waiting session and returns its document.
// Session ids are the first 8 characters of a UUID; on the rare collision
// another id is drawn.
func (s *Service) CreateSession(ctx context.Context, totalRounds int) (*models.Session, error) {
	if totalRounds <= 0 {
		return nil, fmt.Errorf("total rounds must be a positive integer, got %d", totalRounds)
	}
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		id := uuid.NewString()[:8]
		if err := s.Store.Create(ctx, id, totalRounds); err != nil {
			lastErr = err
			continue
		}
		return s.Store.Get(ctx, id)
	}
	return nil, fmt.Errorf("creating session: %w", lastErr)
}

// Join registers a new player on a waiting session. Player ids are the
// first 6 characters of a UUID. The display name is trimmed and must be
// non-empty.
func (s *Service) Join(ctx context.Context, sessionID, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("display name must not be empty")
	}
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: join requires a waiting session, status is %q",
			ErrInvalidStateTransition, sess.Status)
	}
	player := &models.Player{ID: uuid.NewString()[:6], Name: name}
	sess.Players[player.ID] = player
	if err := s.Store.SetField(ctx, sessionID, store.FieldPlayers, sess.Players); err != nil {
		return nil, err
	}
	return player, nil
}

// Start transitions a waiting session to in_progress and spawns its
// lifecycle run. A second start on the same session fails the guard.
func (s *Service) Start(ctx context.Context, sessionID string) error {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.StatusWaiting {
		return fmt.Errorf("%w: start requires a waiting session, status is %q",
			ErrInvalidStateTransition, sess.Status)
	}
	if err := s.Store.SetField(ctx, sessionID, store.FieldCurrentRound, 1); err != nil {
		return err
	}
	if err := s.Store.SetField(ctx, sessionID, store.FieldStatus, models.StatusInProgress); err != nil {
		return err
	}
	s.Scheduler.OnSessionStarted(sessionID)
	return nil
}

// Submit records a player's number for the current round. The write lands
// directly in the session document; whether it counts is decided by the
// lifecycle's deadline, not here. Late writes inside in_progress are simply
// overwritten by the next round's reset.
func (s *Service) Submit(ctx context.Context, sessionID, playerID string, number int) error {
	if number < s.MinNumber || number > s.MaxNumber {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrNumberOutOfRange, number, s.MinNumber, s.MaxNumber)
	}
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	player, ok := sess.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if sess.Status != models.StatusInProgress {
		return fmt.Errorf("%w: submissions are only accepted while in progress, status is %q",
			ErrInvalidStateTransition, sess.Status)
	}
	player.Submission = &number
	return s.Store.SetField(ctx, sessionID, store.FieldPlayers, sess.Players)
}

// Status returns the session's current status.
func (s *Service) Status(ctx context.Context, sessionID string) (models.Status, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return sess.Status, nil
}

// AwaitStatusChange long-polls for the status to move away from last. The
// wait is capped at ceiling; at the cap the current status is returned
// rather than an error, so pollers always get the last-known stable state.
func (s *Service) AwaitStatusChange(ctx context.Context, sessionID string, last models.Status, ceiling time.Duration) (models.Status, error) {
	deadline := time.Now().Add(ceiling)
	for {
		status, err := s.Status(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if status != last || !time.Now().Before(deadline) {
			return status, nil
		}
		t := time.NewTimer(250 * time.Millisecond)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, nil
		case <-t.C:
		}
	}
}

// Results returns the session's rounds scored so far.
func (s *Service) Results(ctx context.Context, sessionID string) (*ResultsView, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &ResultsView{
		GameID:       sess.ID,
		Status:       sess.Status,
		TotalRounds:  sess.TotalRounds,
		CurrentRound: sess.CurrentRound,
		RoundResults: sess.RoundResults,
	}, nil
}
