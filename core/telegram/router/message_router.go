package router

import (
	"time"

	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"github.com/metrica-project/metrica-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for an FSM manager.
type FSM interface {
	InProgress(userID int64) bool
	HandleUpdate(c tele.Context) error
}

// TextOptions controls routing of plain text updates.
type TextOptions struct {
	Access      middleware.AccessOptions
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for free-form text. An in-progress flow wins
// over everything; otherwise the text is resolved as a command (aliases
// included) and finally handed to the text fallback.
func TextRoute(fsmMgr FSM, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && c.Sender() != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.HandleUpdate(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				h := cmd.Handler
				if !cmd.Open {
					h = middleware.AllowedOnlyMiddleware(opts.Access)(h)
				}
				return handleWithSummary(c, name, start, "", "", func() error {
					return h(c)
				})
			}

			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  handler,
	}
}
