package middleware

import (
	"log/slog"

	"github.com/metrica-project/metrica-bot/core/logger"
	tghelpers "github.com/metrica-project/metrica-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AccessOptions defines how the allow-list check behaves. An empty Allowed
// set rejects everyone; the bot is closed until users are listed. Handlers
// meant to stay reachable regardless (help, about) skip this middleware.
type AccessOptions struct {
	Allowed  map[int64]struct{}
	OnReject tele.HandlerFunc
}

// Permits reports whether the given user is on the allow-list.
func (o AccessOptions) Permits(userID int64) bool {
	_, ok := o.Allowed[userID]
	return ok
}

// AllowedOnlyMiddleware drops updates from users outside the allow-list.
// Rejected updates are logged and optionally answered via OnReject.
func AllowedOnlyMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Permits(user.ID) {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)
			logger.Warn(ctx, "tg", "access.denied",
				slog.Int64("user_id", user.ID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
