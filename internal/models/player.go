package models

// Player is one participant in a session. Submission is nil until the player
// submits a number for the current round; the lifecycle resets it to nil at
// every round boundary.
type Player struct {
	ID         string `json:"player_id"`
	Name       string `json:"name"`
	Submission *int   `json:"number"`
}
