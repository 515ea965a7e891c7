package router

import (
	"time"

	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// mediaEndpoints maps registry media kinds onto Telebot endpoints.
var mediaEndpoints = map[string]string{
	tg.MediaPhoto:    tele.OnPhoto,
	tg.MediaDocument: tele.OnDocument,
	tg.MediaVideo:    tele.OnVideo,
	tg.MediaAudio:    tele.OnAudio,
	tg.MediaVoice:    tele.OnVoice,
	tg.MediaSticker:  tele.OnSticker,
}

// MediaRoutes builds one route per media kind. An active flow gets the
// update first; otherwise the kind dispatches to its registry handler or,
// failing that, to the shared media fallback.
func MediaRoutes(fsmMgr FSM, reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(mediaEndpoints))
	for kind, endpoint := range mediaEndpoints {
		kind := kind
		handler := func(c tele.Context) error {
			start := time.Now()
			name := "media." + kind
			extras := []slog.Attr{slog.String("media", kind)}

			if fsmMgr != nil && c.Sender() != nil && fsmMgr.InProgress(c.Sender().ID) {
				return handleWithSummary(c, "fsm_"+kind, start, "", "", func() error {
					return fsmMgr.HandleUpdate(c)
				}, extras...)
			}

			if h, ok := reg.GetMedia(kind); ok && h != nil {
				return handleWithSummary(c, name, start, "", "", func() error {
					return h(c)
				}, extras...)
			}

			if fb := reg.MediaFallback(); fb != nil {
				return handleWithSummary(c, name, start, "", "", func() error {
					return fb(c)
				}, extras...)
			}

			logHandlerSummary(c, name, start, "skip", "ok", nil, extras...)
			return nil
		}
		routes = append(routes, tg.Route{Endpoint: endpoint, Handler: handler})
	}
	return routes
}
