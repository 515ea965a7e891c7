package router

import (
	"time"

	"github.com/metrica-project/metrica-bot/core/logger"
	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"github.com/metrica-project/metrica-bot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Access middleware.AccessOptions
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Commands marked Open skip the allow-list check.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		name := normalizeHandlerName(cmd)
		h = func(inner tele.HandlerFunc, name string) tele.HandlerFunc {
			return func(c tele.Context) error {
				return handleWithSummary(c, name, time.Now(), "", "", func() error {
					return inner(c)
				})
			}
		}(h, name)
		if !def.Open {
			h = middleware.AllowedOnlyMiddleware(opts.Access)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.LogEvent(logger.Background(), logger.TWire, slog.LevelInfo, "complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
