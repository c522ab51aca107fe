// internal/game/service_test.go
package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := &Service{
		Store:     st,
		Scheduler: NewScheduler(st, testLifecycleConfig(), testLogger()),
		MinNumber: 0,
		MaxNumber: 100,
	}
	return svc, st
}

func TestServiceCreateSession(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.CreateSession(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, sess.ID, 8)
	assert.Equal(t, models.StatusWaiting, sess.Status)
	assert.Equal(t, 3, sess.TotalRounds)
	assert.Equal(t, 1, sess.CurrentRound)
	assert.Empty(t, sess.Players)
	assert.Empty(t, sess.RoundResults)

	_, err = svc.CreateSession(context.Background(), 0)
	assert.Error(t, err)
}

func TestServiceJoin(t *testing.T) {
	svc, _ := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)

	player, err := svc.Join(context.Background(), sess.ID, "  Alice  ")
	require.NoError(t, err)
	assert.Len(t, player.ID, 6)
	assert.Equal(t, "Alice", player.Name, "display name must be trimmed")
	assert.Nil(t, player.Submission)

	_, err = svc.Join(context.Background(), sess.ID, "   ")
	assert.Error(t, err, "blank display name must be rejected")

	_, err = svc.Join(context.Background(), "nope", "Bob")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceStartGuards(t *testing.T) {
	svc, st := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), sess.ID, "Alice")
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), sess.ID, "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.Start(context.Background(), sess.ID))

	got, err := st.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, 1, got.CurrentRound)

	// second start must fail the waiting guard
	assert.ErrorIs(t, svc.Start(context.Background(), sess.ID), ErrInvalidStateTransition)

	// joining after start must fail too
	_, err = svc.Join(context.Background(), sess.ID, "Carol")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	assert.ErrorIs(t, svc.Start(context.Background(), "nope"), store.ErrNotFound)
}

func TestServiceSubmit(t *testing.T) {
	svc, _ := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)
	alice, err := svc.Join(context.Background(), sess.ID, "Alice")
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), sess.ID, "Bob")
	require.NoError(t, err)

	// submissions before start fail the state guard
	assert.ErrorIs(t, svc.Submit(context.Background(), sess.ID, alice.ID, 42), ErrInvalidStateTransition)

	require.NoError(t, svc.Start(context.Background(), sess.ID))

	require.NoError(t, svc.Submit(context.Background(), sess.ID, alice.ID, 42))

	assert.ErrorIs(t, svc.Submit(context.Background(), sess.ID, alice.ID, 101), ErrNumberOutOfRange)
	assert.ErrorIs(t, svc.Submit(context.Background(), sess.ID, alice.ID, -1), ErrNumberOutOfRange)
	assert.ErrorIs(t, svc.Submit(context.Background(), sess.ID, "ghost", 42), ErrPlayerNotFound)
	assert.ErrorIs(t, svc.Submit(context.Background(), "nope", alice.ID, 42), store.ErrNotFound)
}

func TestServiceSubmitUnknownPlayerLeavesStateUnchanged(t *testing.T) {
	svc, st := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), sess.ID, "Alice")
	require.NoError(t, err)

	before, err := st.Get(context.Background(), sess.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Submit(context.Background(), sess.ID, "ghost", 42), ErrPlayerNotFound)

	after, err := st.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServiceResultsPartialRead(t *testing.T) {
	svc, _ := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 3)
	require.NoError(t, err)

	// a waiting session exposes an empty, readable result set
	view, err := svc.Results(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, view.Status)
	assert.Equal(t, 3, view.TotalRounds)
	assert.Empty(t, view.RoundResults)

	_, err = svc.Results(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceStatusAndLongPoll(t *testing.T) {
	svc, st := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, status)

	// the wait must cap out and return the unchanged status, not an error
	start := time.Now()
	status, err = svc.AwaitStatusChange(context.Background(), sess.ID, models.StatusWaiting, 300*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, status)
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)

	// a change during the wait is observed
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = st.SetField(context.Background(), sess.ID, store.FieldStatus, models.StatusInProgress)
	}()
	status, err = svc.AwaitStatusChange(context.Background(), sess.ID, models.StatusWaiting, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)
}

func TestServiceFullGameThroughStart(t *testing.T) {
	svc, st := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), 1)
	require.NoError(t, err)
	alice, err := svc.Join(context.Background(), sess.ID, "Alice")
	require.NoError(t, err)
	bob, err := svc.Join(context.Background(), sess.ID, "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.Start(context.Background(), sess.ID))
	// let the round's opening reset land before submitting
	time.Sleep(15 * time.Millisecond)
	require.NoError(t, svc.Submit(context.Background(), sess.ID, alice.ID, 10))
	require.NoError(t, svc.Submit(context.Background(), sess.ID, bob.ID, 20))

	require.Eventually(t, func() bool {
		got, err := st.Get(context.Background(), sess.ID)
		return err == nil && got.Status == models.StatusFinished
	}, 2*time.Second, 10*time.Millisecond)

	view, err := svc.Results(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, view.RoundResults["1"])
	assert.Equal(t, []string{alice.ID}, view.RoundResults["1"].Winners)
	assert.InDelta(t, 12.0, view.RoundResults["1"].Target, 1e-9)
}
