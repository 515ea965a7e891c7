package router

import (
	"time"

	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"github.com/metrica-project/metrica-bot/core/telegram/callbacks"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	FSM      FSM
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// The callback is acknowledged before dispatch so the client spinner stops
// even if the handler fails. Keys without a registry entry are offered to the
// FSM when the user has a flow in progress; otherwise the not-found fallback
// responds.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		if cbHandler, ok := reg.GetCallback(key); ok && cbHandler != nil {
			return handleWithSummary(c, name, start, "", "", func() error {
				return cbHandler(c)
			}, extras...)
		}

		if opts.FSM != nil && c.Sender() != nil && opts.FSM.InProgress(c.Sender().ID) {
			extras = append(extras, slog.String("reason", "fsm"))
			return handleWithSummary(c, name, start, "", "", func() error {
				return opts.FSM.HandleUpdate(c)
			}, extras...)
		}

		fallback := reg.CallbackNotFound()
		if fallback == nil {
			fallback = opts.NotFound
		}
		extras = append(extras, slog.String("reason", "not_found"))
		return handleWithSummary(c, name, start, "", "", func() error {
			if fallback != nil {
				return fallback(c)
			}
			return nil
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  handler,
	}
}
