package state

import tele "gopkg.in/telebot.v4"

// State identifies a conversation step.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	// An absent session and StateIdle are equivalent.
	StateIdle State = "idle"
	// StateEnd terminates a conversation. Returning it from a step clears
	// the session and its collected data.
	StateEnd State = "end"
)

// Session is the snapshot of one user's conversation: the current step and
// the fields collected so far.
type Session struct {
	State State
	Data  map[string]string
}

// StepFunc processes one update for a session and returns the next step.
// Returning StateEnd (or StateIdle) finishes the conversation. Mutations of
// s.Data are persisted; the returned state drives the transition.
type StepFunc func(c tele.Context, s *Session) (State, error)

// Manager orchestrates user sessions and conversation transitions.
type Manager interface {
	// Handle associates a step with its handler. Duplicate steps fail.
	Handle(st State, fn StepFunc) error

	// Begin opens (or replaces) a session at the given step, seeding it
	// with the provided data. A nil seed starts with an empty field map.
	Begin(userID int64, st State, seed map[string]string)

	// Get returns a copy of the user's session, or an idle session when
	// no conversation is active.
	Get(userID int64) Session
	GetState(userID int64) State
	InProgress(userID int64) bool

	// ForceEnd terminates the user's conversation regardless of its
	// current step and discards all collected data.
	ForceEnd(userID int64)

	// HandleUpdate runs the step registered for the sender's current
	// state and persists the returned transition. Updates for the same
	// session are serialized; different sessions proceed concurrently.
	HandleUpdate(c tele.Context) error
}
