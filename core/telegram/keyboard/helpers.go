package keyboard

import (
	"fmt"

	tele "gopkg.in/telebot.v4"
)

// Btn describes an inline button by its visible label, callback key and
// optional payload.
type Btn struct {
	Text   string
	Unique string
	Data   string
}

const defaultCancelButtonText = "❌ Cancel"

// Menu builds a validated inline keyboard where each button sits on its
// own row. Every button must carry a non-empty label and a callback key
// unique within the keyboard.
func Menu(buttons ...Btn) (*tele.ReplyMarkup, error) {
	rows := make([][]Btn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []Btn{b})
	}
	return MenuRows(rows...)
}

// MenuRows builds a validated inline keyboard from rows of buttons.
func MenuRows(rows ...[]Btn) (*tele.ReplyMarkup, error) {
	seen := make(map[string]struct{})
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			if btn.Text == "" {
				return nil, fmt.Errorf("keyboard: empty label at row %d", i)
			}
			if btn.Unique == "" {
				return nil, fmt.Errorf("keyboard: empty callback key for %q", btn.Text)
			}
			if _, dup := seen[btn.Unique]; dup {
				return nil, fmt.Errorf("keyboard: duplicate callback key %q", btn.Unique)
			}
			seen[btn.Unique] = struct{}{}
			r[j] = *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup, nil
}

// InlineButtonsNPerRow splits a flat list of buttons into rows with up to
// n buttons per row. If n <= 1, every button gets its own row.
func InlineButtonsNPerRow(buttons []Btn, n int) (*tele.ReplyMarkup, error) {
	if n <= 1 {
		return Menu(buttons...)
	}
	var rows [][]Btn
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return MenuRows(rows...)
}

// ToInlineKeyboard converts [][]tele.Btn to [][]tele.InlineButton.
func ToInlineKeyboard(buttons [][]tele.Btn) [][]tele.InlineButton {
	inline := make([][]tele.InlineButton, 0, len(buttons))
	for _, row := range buttons {
		r := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			r = append(r, *b.Inline())
		}
		inline = append(inline, r)
	}
	return inline
}

// CancelButton returns a reusable cancel inline button for the provided markup and action.
// Optional arguments allow overriding payload (first value) and button label (second value).
func CancelButton(markup *tele.ReplyMarkup, action string, options ...string) tele.Btn {
	payload := "cancel"
	if len(options) > 0 && options[0] != "" {
		payload = options[0]
	}
	text := defaultCancelButtonText
	if len(options) > 1 && options[1] != "" {
		text = options[1]
	}
	return markup.Data(text, action, payload)
}

// SingleCancelMarkup creates an inline keyboard with a single cancel button.
func SingleCancelMarkup(action string, options ...string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	btn := CancelButton(markup, action, options...)
	markup.InlineKeyboard = [][]tele.InlineButton{{*btn.Inline()}}
	return markup
}
