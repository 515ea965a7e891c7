package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/metrica-project/metrica-bot/core/logger"
	tghelpers "github.com/metrica-project/metrica-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const panicReplyText = "Sorry, something went wrong. Please try again."

// RecoverMiddleware catches panics in handlers so one bad update cannot
// take the bot down. The user gets a generic failure reply.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				ctx := tghelpers.BuildContext(c)
				logger.Error(ctx, "tg", "tg.panic",
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				_ = c.Send(panicReplyText)
			}
		}()
		return next(c)
	}
}
