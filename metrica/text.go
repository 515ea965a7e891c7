package metrica

import (
	"fmt"
	"strings"

	"github.com/metrica-project/metrica-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// handleFreeText answers small talk and acknowledges everything else.
func (a *App) handleFreeText(c tele.Context) error {
	name := ""
	if u := c.Sender(); u != nil {
		name = u.FirstName
	}

	var reply string
	switch strings.ToLower(strings.TrimSpace(c.Text())) {
	case "hello", "hi", "hey":
		reply = fmt.Sprintf("Hello %s! How can I help you?", name)
	case "bye", "goodbye":
		reply = fmt.Sprintf("Goodbye %s!", name)
	case "thanks", "thank you":
		reply = fmt.Sprintf("You're welcome, %s!", name)
	case "how are you", "how are you?":
		reply = "I'm doing great! Thanks for asking. How can I help you today?"
	default:
		reply = fmt.Sprintf("You said: '%s'\n\nI received your message!", c.Text())
	}
	return helpers.SendText(c, reply)
}
