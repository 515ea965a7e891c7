package state

import (
	"fmt"
	"sync"

	"github.com/metrica-project/metrica-bot/core/logger"
	tghelpers "github.com/metrica-project/metrica-bot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type session struct {
	mu    sync.Mutex
	state State
	data  map[string]string
}

type memoryManager struct {
	mu       sync.RWMutex
	steps    map[State]StepFunc
	sessions map[int64]*session
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		steps:    make(map[State]StepFunc),
		sessions: make(map[int64]*session),
	}
}

// Handle associates a step with its handler. Duplicate steps fail so wiring
// mistakes surface at startup.
func (m *memoryManager) Handle(st State, fn StepFunc) error {
	if st == "" || st == StateIdle || st == StateEnd || fn == nil {
		return fmt.Errorf("state: invalid step registration %q", st)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.steps[st]; exists {
		return fmt.Errorf("state: step already registered: %s", st)
	}
	m.steps[st] = fn
	return nil
}

// Begin opens (or replaces) a session at the given step.
func (m *memoryManager) Begin(userID int64, st State, seed map[string]string) {
	if st == "" || st == StateIdle || st == StateEnd {
		return
	}
	data := make(map[string]string, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	m.mu.Lock()
	m.sessions[userID] = &session{state: st, data: data}
	m.mu.Unlock()
}

// Get returns a copy of the user's session, or an idle one.
func (m *memoryManager) Get(userID int64) Session {
	m.mu.RLock()
	sess := m.sessions[userID]
	m.mu.RUnlock()
	if sess == nil {
		return Session{State: StateIdle, Data: map[string]string{}}
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	data := make(map[string]string, len(sess.data))
	for k, v := range sess.data {
		data[k] = v
	}
	return Session{State: sess.state, Data: data}
}

// GetState returns the current step of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	sess := m.sessions[userID]
	m.mu.RUnlock()
	if sess == nil {
		return StateIdle
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// InProgress reports whether the user currently has an active conversation.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// ForceEnd terminates the conversation and discards collected data.
func (m *memoryManager) ForceEnd(userID int64) {
	m.mu.Lock()
	sess := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if sess == nil {
		return
	}
	// Mark the session ended for any step currently holding it.
	sess.mu.Lock()
	sess.state = StateEnd
	sess.data = map[string]string{}
	sess.mu.Unlock()
}

// HandleUpdate runs the step registered for the sender's current state and
// persists the returned transition. The session lock is held across step
// execution, so a single session never runs two steps at once.
func (m *memoryManager) HandleUpdate(c tele.Context) error {
	userID := c.Sender().ID
	m.mu.RLock()
	sess := m.sessions[userID]
	m.mu.RUnlock()
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state == StateIdle || sess.state == StateEnd {
		return nil
	}

	m.mu.RLock()
	step := m.steps[sess.state]
	m.mu.RUnlock()

	ctx := tghelpers.BuildContext(c)
	if step == nil {
		logger.Warn(ctx, "flow", "fsm.step.missing",
			slog.Int64("user_id", userID),
			slog.String("step", string(sess.state)),
		)
		m.drop(userID, sess)
		return nil
	}

	view := &Session{State: sess.state, Data: sess.data}
	next, err := step(c, view)
	if err != nil {
		// The session stays on the current step so the user can retry.
		return err
	}

	logger.Debug(ctx, "flow", "fsm.transition",
		slog.Int64("user_id", userID),
		slog.String("step", string(sess.state)),
		slog.String("next_step", string(next)),
	)

	if next == StateEnd || next == StateIdle || next == "" {
		m.drop(userID, sess)
		return nil
	}
	sess.state = next
	return nil
}

// drop removes the session if it is still the one registered for the user.
// Callers must hold sess.mu.
func (m *memoryManager) drop(userID int64, sess *session) {
	sess.state = StateEnd
	sess.data = map[string]string{}
	m.mu.Lock()
	if m.sessions[userID] == sess {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()
}
