// Package state stores per-user conversation sessions for FSM-driven bots.
//
// A session is a pair of the current dialog state and a small string map of
// data collected along the way. Set merges its patch into the existing data,
// so values gathered in earlier steps survive later transitions until Clear.
package state

import "context"

// State identifies a step of a bot conversation.
type State string

// StateNone means no conversation is in progress for the user.
const StateNone State = "none"

// Session holds the dialog position and accumulated data of one user.
type Session struct {
	State State             `json:"state"`
	Data  map[string]string `json:"data"`
}

// NewSession returns the default session for users without one.
func NewSession() Session {
	return Session{State: StateNone, Data: make(map[string]string)}
}

// Clone returns a deep copy so callers cannot mutate stored sessions.
func (s Session) Clone() Session {
	out := Session{State: s.State, Data: make(map[string]string, len(s.Data))}
	for k, v := range s.Data {
		out.Data[k] = v
	}
	return out
}

// Manager persists sessions keyed by Telegram user ID.
type Manager interface {
	// Get returns the user's session, or the default session when absent.
	Get(ctx context.Context, userID int64) (Session, error)
	// Set transitions the user to state and merges patch into the session data.
	Set(ctx context.Context, userID int64, state State, patch map[string]string) error
	// Clear removes the session entirely.
	Clear(ctx context.Context, userID int64) error
}
