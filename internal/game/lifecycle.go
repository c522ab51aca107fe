// internal/game/lifecycle.go
package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

// LifecycleConfig carries the timed-phase durations and scoring parameters
// for a lifecycle run. All durations must be positive.
type LifecycleConfig struct {
	SubmitWindow time.Duration // primary collection window
	GraceWindow  time.Duration // late-submission window after the deadline
	ResultsHold  time.Duration // how long the scoring state is held for readers

	TargetFactor      float64 // mean multiplier in (0, 1]
	DefaultSubmission int     // assigned to players who never submitted
}

// RoundLifecycle drives exactly one session through its rounds: open the
// round, wait out the submission and grace windows, default missing
// submissions, score, publish, then advance or finish. It shares no memory
// with request handlers; the session document in the store is the only
// channel between them, and the document is re-read after every suspension
// point rather than cached across one.
type RoundLifecycle struct {
	sessionID string
	store     store.Store
	cfg       LifecycleConfig
	log       *log.Entry

	// OnFinish, if set, is invoked with the final document after the
	// session transitions to finished. Used for result archival.
	OnFinish func(ctx context.Context, sess *models.Session)
}

// NewRoundLifecycle builds a run for one session. It does not start it;
// call Run, normally from the Scheduler.
func NewRoundLifecycle(sessionID string, st store.Store, cfg LifecycleConfig, logger *log.Logger) *RoundLifecycle {
	return &RoundLifecycle{
		sessionID: sessionID,
		store:     st,
		cfg:       cfg,
		log:       logger.WithField("session", sessionID),
	}
}

// Run executes rounds until the session finishes or the run dies. A missing
// session is an expected race with external deletion and ends the run
// without error. A corrupt document or an unscorable round ends the run
// with the error; the caller decides what to log, and the failure never
// touches other sessions.
func (rl *RoundLifecycle) Run(ctx context.Context) error {
	for {
		done, err := rl.runRound(ctx)
		if err != nil || done {
			return err
		}
	}
}

// runRound executes one full round. done is true when the run should stop,
// whether because the session finished, vanished, or failed.
func (rl *RoundLifecycle) runRound(ctx context.Context) (done bool, err error) {
	// Open
	sess, gone, err := rl.read(ctx)
	if gone || err != nil {
		return true, err
	}
	if sess.Finished() {
		rl.log.Info("session already finished, ending lifecycle run")
		return true, nil
	}
	if sess.Status != models.StatusInProgress {
		return true, &store.CorruptStateError{
			SessionID: rl.sessionID,
			Reason:    fmt.Sprintf("round opened while status is %q", sess.Status),
		}
	}
	if sess.CurrentRound < 1 || sess.CurrentRound > sess.TotalRounds {
		return true, &store.CorruptStateError{
			SessionID: rl.sessionID,
			Reason:    fmt.Sprintf("current round %d outside [1, %d]", sess.CurrentRound, sess.TotalRounds),
		}
	}
	round := sess.CurrentRound
	rlog := rl.log.WithField("round", round)
	rlog.Info("round opened")

	// submissions carry over from nothing: a new round starts unset
	for _, p := range sess.Players {
		p.Submission = nil
	}
	if err := rl.store.SetField(ctx, rl.sessionID, store.FieldPlayers, sess.Players); err != nil {
		return rl.writeFailed(err)
	}

	// Collect, then grace. Both windows always run full length so every
	// player sees the same deadline regardless of arrival order.
	if err := rl.wait(ctx, rl.cfg.SubmitWindow); err != nil {
		return true, err
	}
	rlog.Debug("primary window closed, grace window open")
	if err := rl.wait(ctx, rl.cfg.GraceWindow); err != nil {
		return true, err
	}

	// Default resolution
	sess, gone, err = rl.read(ctx)
	if gone || err != nil {
		return true, err
	}
	if sess.Finished() {
		return true, nil
	}
	defaulted := 0
	snapshot := make(map[string]int, len(sess.Players))
	for id, p := range sess.Players {
		if p.Submission == nil {
			v := rl.cfg.DefaultSubmission
			p.Submission = &v
			defaulted++
		}
		snapshot[id] = *p.Submission
	}
	if defaulted > 0 {
		rlog.WithField("defaulted", defaulted).Info("assigned default submissions")
		if err := rl.store.SetField(ctx, rl.sessionID, store.FieldPlayers, sess.Players); err != nil {
			return rl.writeFailed(err)
		}
	}

	// Score
	target, winners, err := Score(snapshot, rl.cfg.TargetFactor)
	if err != nil {
		return true, fmt.Errorf("scoring round %d: %w", round, err)
	}
	result := &models.RoundResult{
		Round:       round,
		Target:      target,
		Winners:     winners,
		Submissions: snapshot,
	}
	key := strconv.Itoa(round)
	if _, exists := sess.RoundResults[key]; exists {
		// results are append-only; an existing entry is never overwritten
		rlog.Warn("round result already present, keeping the existing one")
	} else {
		sess.RoundResults[key] = result
		if err := rl.store.SetField(ctx, rl.sessionID, store.FieldRoundResults, sess.RoundResults); err != nil {
			return rl.writeFailed(err)
		}
	}
	rlog.WithFields(log.Fields{"target": target, "winners": winners}).Info("round scored")

	// Publish
	if err := rl.store.SetField(ctx, rl.sessionID, store.FieldStatus, models.StatusScoring); err != nil {
		return rl.writeFailed(err)
	}
	if err := rl.wait(ctx, rl.cfg.ResultsHold); err != nil {
		return true, err
	}

	// Advance or finish
	sess, gone, err = rl.read(ctx)
	if gone || err != nil {
		return true, err
	}
	if sess.Finished() {
		return true, nil
	}
	if round >= sess.TotalRounds {
		if err := rl.store.SetField(ctx, rl.sessionID, store.FieldStatus, models.StatusFinished); err != nil {
			return rl.writeFailed(err)
		}
		sess.Status = models.StatusFinished
		rlog.Info("final round complete, session finished")
		if rl.OnFinish != nil {
			rl.OnFinish(ctx, sess)
		}
		return true, nil
	}
	if err := rl.store.SetField(ctx, rl.sessionID, store.FieldCurrentRound, round+1); err != nil {
		return rl.writeFailed(err)
	}
	if err := rl.store.SetField(ctx, rl.sessionID, store.FieldStatus, models.StatusInProgress); err != nil {
		return rl.writeFailed(err)
	}
	rlog.Info("advancing to next round")
	return false, nil
}

// read fetches the session document. gone is true when the session no
// longer exists, which ends the run cleanly.
func (rl *RoundLifecycle) read(ctx context.Context) (sess *models.Session, gone bool, err error) {
	sess, err = rl.store.Get(ctx, rl.sessionID)
	if errors.Is(err, store.ErrNotFound) {
		rl.log.Info("session no longer exists, ending lifecycle run")
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return sess, false, nil
}

// writeFailed classifies a SetField failure: a vanished session ends the
// run cleanly, anything else is fatal to this run.
func (rl *RoundLifecycle) writeFailed(err error) (bool, error) {
	if errors.Is(err, store.ErrNotFound) {
		rl.log.Info("session deleted mid-round, ending lifecycle run")
		return true, nil
	}
	return true, err
}

// wait suspends for d or until the context is cancelled. It never holds a
// lock, so other sessions' runs and the API surface proceed freely.
func (rl *RoundLifecycle) wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
