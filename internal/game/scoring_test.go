// internal/game/scoring_test.go
package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSingleWinner(t *testing.T) {
	subs := map[string]int{"a": 10, "b": 20}

	target, winners, err := Score(subs, 0.8)
	require.NoError(t, err)

	// mean 15 * 0.8 => 12; |10-12| = 2 beats |20-12| = 8
	assert.InDelta(t, 12.0, target, 1e-9)
	assert.Equal(t, []string{"a"}, winners)
}

func TestScoreTieKeepsAllWinners(t *testing.T) {
	// mean 15 * 1.0 => 15, both sit 5 away
	target, winners, err := Score(map[string]int{"a": 10, "b": 20}, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, target, 1e-9)
	assert.Equal(t, []string{"a", "b"}, winners)
}

func TestScoreAllDefaultedTie(t *testing.T) {
	subs := map[string]int{"a": 10, "b": 10, "c": 10}

	target, winners, err := Score(subs, 0.8)
	require.NoError(t, err)

	assert.InDelta(t, 8.0, target, 1e-9)
	assert.Len(t, winners, 3)
}

func TestScoreWinnersHaveMinimumDistance(t *testing.T) {
	cases := []map[string]int{
		{"a": 0, "b": 100},
		{"a": 33, "b": 34, "c": 35},
		{"a": 1, "b": 1, "c": 99, "d": 50},
		{"a": 0, "b": 0, "c": 0},
		{"a": 7, "b": 42, "c": 42, "d": 13, "e": 88},
	}
	for _, subs := range cases {
		target, winners, err := Score(subs, 0.8)
		require.NoError(t, err)
		require.NotEmpty(t, winners)

		minDiff := math.Inf(1)
		for _, v := range subs {
			if d := math.Abs(float64(v) - target); d < minDiff {
				minDiff = d
			}
		}
		isWinner := make(map[string]bool)
		for _, id := range winners {
			isWinner[id] = true
		}
		for id, v := range subs {
			d := math.Abs(float64(v) - target)
			if isWinner[id] {
				assert.Equal(t, minDiff, d, "winner %s must sit at the minimum distance", id)
			} else {
				assert.Greater(t, d, minDiff, "non-winner %s must not tie the minimum", id)
			}
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	subs := map[string]int{"a": 12, "b": 47, "c": 30, "d": 30}

	t1, w1, err := Score(subs, 0.8)
	require.NoError(t, err)
	t2, w2, err := Score(subs, 0.8)
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Equal(t, w1, w2)
}

func TestScoreInsufficientPlayers(t *testing.T) {
	_, _, err := Score(map[string]int{"a": 10}, 0.8)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)

	_, _, err = Score(map[string]int{}, 0.8)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}
