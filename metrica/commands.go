package metrica

import (
	"fmt"

	"github.com/metrica-project/metrica-bot/core/buildinfo"
	"github.com/metrica-project/metrica-bot/core/telegram/commands"
	"github.com/metrica-project/metrica-bot/core/telegram/format"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const helpText = `<b>Available Commands:</b>

/start - Start the bot
/help - Show this help
/about - About the bot
/register - Introduce yourself
/cancel - Abort the current form

<b>Features:</b>
• Interactive buttons
• Order forms
• Simple and reliable

Just send me a message!`

func aboutText() string {
	return fmt.Sprintf(`<b>Metrica Bot</b>

A simple Telegram bot for the Metrica project.

<b>Version:</b> %s
<b>Commit:</b> %s

Built for the Metrica project.`, buildinfo.Version, buildinfo.Commit)
}

func (a *App) registerCommands() error {
	cmds := map[string]commands.Command{
		"/start": {
			Description: "Start the bot",
			Handler:     a.handleStart,
		},
		"/help": {
			Description: "Show help",
			Open:        true,
			Handler:     a.handleHelp,
		},
		"/about": {
			Description: "About the bot",
			Open:        true,
			Handler:     a.handleAbout,
		},
		"/get_my_id": {
			Description: "Show your Telegram info",
			Open:        true,
			Hidden:      true,
			Handler:     a.handleGetMyID,
		},
		"/register": {
			Description: "Introduce yourself",
			Open:        true,
			Handler:     a.handleRegister,
		},
		"/cancel": {
			Description: "Abort the current form",
			Open:        true,
			Handler:     a.handleCancel,
		},
	}
	for name, cmd := range cmds {
		if err := a.reg.RegisterCommand(name, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) handleStart(c tele.Context) error {
	name := ""
	if u := c.Sender(); u != nil {
		name = u.FirstName
	}
	text := fmt.Sprintf("Welcome to Metrica Bot, %s!\n\nI'm here to help you. Use /help for more info.",
		format.EscapeHTML(name))
	return helpers.SendHTML(c, text, a.menus.main)
}

func (a *App) handleHelp(c tele.Context) error {
	return helpers.SendHTML(c, helpText)
}

func (a *App) handleAbout(c tele.Context) error {
	return helpers.SendHTML(c, aboutText())
}

func (a *App) handleGetMyID(c tele.Context) error {
	u := c.Sender()
	if u == nil {
		return nil
	}
	text := fmt.Sprintf(
		"<b>Your Telegram Info:</b>\n\nUser ID: <code>%d</code>\nUsername: @%s\nFirst Name: %s",
		u.ID, format.EscapeHTML(u.Username), format.EscapeHTML(u.FirstName))
	return helpers.SendHTML(c, text)
}

func (a *App) handleRegister(c tele.Context) error {
	return a.register.Start(c, a.fsm)
}

func (a *App) handleCancel(c tele.Context) error {
	u := c.Sender()
	if u == nil {
		return nil
	}
	if !a.fsm.InProgress(u.ID) {
		return helpers.SendText(c, "Nothing to cancel.")
	}
	a.fsm.ForceEnd(u.ID)
	return helpers.SendText(c, "Cancelled. All entered data discarded.")
}
