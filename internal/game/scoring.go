// internal/game/scoring.go
package game

import (
	"math"
	"sort"
)

// Score computes the round target and winner set from a full submission
// snapshot. target is the mean of all submissions multiplied by factor.
// Winners are every player whose submission sits at the minimum absolute
// distance from the target; ties keep all tied players. The comparison uses
// exact float64 equality against the same minimum computed here, so at
// least one winner always exists.
//
// Score is pure and deterministic: winners come back sorted so identical
// input yields identical output.
func Score(submissions map[string]int, factor float64) (target float64, winners []string, err error) {
	if len(submissions) < 2 {
		return 0, nil, ErrInsufficientPlayers
	}

	sum := 0
	for _, v := range submissions {
		sum += v
	}
	target = float64(sum) / float64(len(submissions)) * factor

	minDiff := math.Inf(1)
	for _, v := range submissions {
		if d := math.Abs(float64(v) - target); d < minDiff {
			minDiff = d
		}
	}
	for id, v := range submissions {
		if math.Abs(float64(v)-target) == minDiff {
			winners = append(winners, id)
		}
	}
	sort.Strings(winners)
	return target, winners, nil
}
