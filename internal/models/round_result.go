// internal/models/round_result.go
package models

// RoundResult is the immutable outcome of one scored round. Submissions is
// the snapshot used for scoring, defaulted values included. Winners holds
// every player id at the minimum distance to Target; ties keep all of them.
type RoundResult struct {
	Round       int            `json:"round"`
	Target      float64        `json:"target"`
	Winners     []string       `json:"winners"`
	Submissions map[string]int `json:"submissions"`
}

// Clone returns a deep copy so stored results stay immutable.
func (r *RoundResult) Clone() *RoundResult {
	cp := *r
	cp.Winners = append([]string(nil), r.Winners...)
	cp.Submissions = make(map[string]int, len(r.Submissions))
	for id, v := range r.Submissions {
		cp.Submissions[id] = v
	}
	return &cp
}
