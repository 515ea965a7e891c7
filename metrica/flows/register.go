// Package flows holds the bot's multi-step conversations.
package flows

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metrica-project/metrica-bot/core/telegram/format"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"
	"github.com/metrica-project/metrica-bot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Registration steps.
const (
	StateRegisterName state.State = "register_name"
	StateRegisterAge  state.State = "register_age"
)

// RegisterFlow collects a user's name and age over two steps.
type RegisterFlow struct{}

// NewRegisterFlow returns the registration conversation.
func NewRegisterFlow() *RegisterFlow {
	return &RegisterFlow{}
}

// Bind registers the flow's steps with the manager.
func (f *RegisterFlow) Bind(mgr state.Manager) error {
	if err := mgr.Handle(StateRegisterName, f.stepName); err != nil {
		return err
	}
	return mgr.Handle(StateRegisterAge, f.stepAge)
}

// Start begins the registration conversation for the sender.
func (f *RegisterFlow) Start(c tele.Context, mgr state.Manager) error {
	mgr.Begin(c.Sender().ID, StateRegisterName, nil)
	return helpers.SendHTML(c, "<b>Registration</b>\n\nWhat's your name?")
}

func (f *RegisterFlow) stepName(c tele.Context, s *state.Session) (state.State, error) {
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return StateRegisterName, helpers.SendText(c, "Please enter a valid name:")
	}
	s.Data["name"] = name
	return StateRegisterAge, helpers.SendHTML(c,
		fmt.Sprintf("Nice to meet you, %s!\n\nHow old are you?", format.EscapeHTML(name)))
}

func (f *RegisterFlow) stepAge(c tele.Context, s *state.Session) (state.State, error) {
	age, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || age <= 0 || age > 120 {
		return StateRegisterAge, helpers.SendText(c, "Please enter your age as a number:")
	}
	s.Data["age"] = strconv.Itoa(age)
	err = helpers.SendHTML(c, fmt.Sprintf(
		"<b>Registration complete!</b>\n\nName: %s\nAge: %d",
		format.EscapeHTML(s.Data["name"]), age))
	return state.StateEnd, err
}
