package domain

import "time"

// LoginEvent is one row of the append-only authentication audit trail.
// Events are written once per successful login and never mutated or deleted.
type LoginEvent struct {
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// NewLoginEvent records a successful authentication for the given username
// at the given time.
func NewLoginEvent(username string, at time.Time) LoginEvent {
	return LoginEvent{Username: username, At: at.UTC()}
}
