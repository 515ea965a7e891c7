package metrica

import (
	"fmt"

	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerMedia() error {
	handlers := map[string]tele.HandlerFunc{
		tg.MediaPhoto: func(c tele.Context) error {
			return helpers.SendText(c, "Nice photo! Photo processing features coming soon!")
		},
		tg.MediaDocument: func(c tele.Context) error {
			name := ""
			if m := c.Message(); m != nil && m.Document != nil {
				name = m.Document.FileName
			}
			return helpers.SendText(c,
				fmt.Sprintf("I received a document: %s\n\nDocument processing coming soon!", name))
		},
		tg.MediaVideo: func(c tele.Context) error {
			return helpers.SendText(c, "Great video! Video processing features coming soon!")
		},
		tg.MediaAudio: func(c tele.Context) error {
			return helpers.SendText(c, "I received an audio file! Audio processing coming soon!")
		},
		tg.MediaVoice: func(c tele.Context) error {
			return helpers.SendText(c, "Voice message received! Voice processing coming soon!")
		},
		tg.MediaSticker: func(c tele.Context) error {
			return helpers.SendText(c, "Nice sticker! 😊")
		},
	}
	for kind, h := range handlers {
		if err := a.reg.RegisterMedia(kind, h); err != nil {
			return err
		}
	}
	return nil
}
