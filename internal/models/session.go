// internal/models/session.go
package models

import "time"

// Status is the lifecycle state of a session. The string values are stored
// verbatim in the session document, so they are part of the wire format.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusScoring    Status = "scoring"
	StatusFinished   Status = "finished"
)

// Session is one game session document as held in the store. Every top-level
// field maps to one store field and is read/written whole.
type Session struct {
	ID           string                  `json:"game_id"`
	Status       Status                  `json:"status"`
	TotalRounds  int                     `json:"total_rounds"`
	CurrentRound int                     `json:"current_round"`
	Players      map[string]*Player      `json:"players"`
	RoundResults map[string]*RoundResult `json:"round_results"`
	CreatedAt    time.Time               `json:"created_at"`
}

// Finished reports whether the session has reached its terminal state.
func (s *Session) Finished() bool {
	return s.Status == StatusFinished
}

// Clone returns a deep copy of the session. Stores hand out clones so a
// caller mutating its view never touches the committed document.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		pc := *p
		if p.Submission != nil {
			v := *p.Submission
			pc.Submission = &v
		}
		cp.Players[id] = &pc
	}
	cp.RoundResults = make(map[string]*RoundResult, len(s.RoundResults))
	for k, r := range s.RoundResults {
		cp.RoundResults[k] = r.Clone()
	}
	return &cp
}
