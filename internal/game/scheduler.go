// internal/game/scheduler.go
package game

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

// Scheduler supervises lifecycle runs. It guarantees at most one active run
// per session: the run, not the store, owns the status and current_round
// fields while a round is in flight, and that exclusivity only holds if no
// second run ever starts. Bookkeeping is removed on every exit path so a
// future restart is not blocked.
type Scheduler struct {
	mu   sync.Mutex
	runs map[string]struct{}

	store  store.Store
	cfg    LifecycleConfig
	logger *log.Logger

	// OnFinish is passed to each run; see RoundLifecycle.OnFinish.
	OnFinish func(ctx context.Context, sess *models.Session)
}

func NewScheduler(st store.Store, cfg LifecycleConfig, logger *log.Logger) *Scheduler {
	return &Scheduler{
		runs:   make(map[string]struct{}),
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
}

// OnSessionStarted spawns a lifecycle run for the session unless one is
// already active. Returns whether a new run was spawned.
func (s *Scheduler) OnSessionStarted(sessionID string) bool {
	s.mu.Lock()
	if _, active := s.runs[sessionID]; active {
		s.mu.Unlock()
		s.logger.WithField("session", sessionID).Warn("lifecycle run already active, not spawning another")
		return false
	}
	s.runs[sessionID] = struct{}{}
	s.mu.Unlock()

	go s.run(sessionID)
	return true
}

// ActiveRunCount reports 0 or 1 for the given session.
func (s *Scheduler) ActiveRunCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, active := s.runs[sessionID]; active {
		return 1
	}
	return 0
}

func (s *Scheduler) run(sessionID string) {
	defer func() {
		s.mu.Lock()
		delete(s.runs, sessionID)
		s.mu.Unlock()
	}()

	rl := NewRoundLifecycle(sessionID, s.store, s.cfg, s.logger)
	rl.OnFinish = s.OnFinish

	err := rl.Run(context.Background())
	entry := s.logger.WithField("session", sessionID)
	switch {
	case err == nil:
		entry.Info("lifecycle run complete")
	case errors.Is(err, ErrInsufficientPlayers):
		entry.WithError(err).Error("lifecycle run aborted: round could not be scored")
	case isCorrupt(err):
		entry.WithError(err).Error("lifecycle run aborted: corrupt session state")
	default:
		entry.WithError(err).Error("lifecycle run failed")
	}
}

func isCorrupt(err error) bool {
	var cs *store.CorruptStateError
	return errors.As(err, &cs)
}
