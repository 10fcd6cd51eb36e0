package entity

// Player - a client session driving a match from one seat.
type Player struct {
	ID      string `json:"id"`
	MatchID string `json:"match_id,omitempty"`
}
