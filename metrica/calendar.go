package metrica

import (
	"fmt"
	"time"

	"github.com/metrica-project/metrica-bot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Calendar callback keys. Day cells share one key and carry the date in the
// payload, so they bypass the validated Menu builder on purpose.
const (
	keyCalNav    = "cal_nav"
	keyCalDay    = "cal_day"
	keyCalIgnore = "cal_ignore"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// calendarMarkup renders one month as an inline keyboard: a navigation
// header, a weekday row and the day grid.
func calendarMarkup(year int, month time.Month) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)

	header := []tele.Btn{
		markup.Data("«", keyCalNav, fmt.Sprintf("%d:%d", prev.Year(), int(prev.Month()))),
		markup.Data(fmt.Sprintf("%s %d", month.String(), year), keyCalIgnore),
		markup.Data("»", keyCalNav, fmt.Sprintf("%d:%d", next.Year(), int(next.Month()))),
	}

	week := make([]tele.Btn, 0, 7)
	for _, wd := range weekdayHeader {
		week = append(week, markup.Data(wd, keyCalIgnore))
	}

	rows := [][]tele.Btn{header, week}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first offset of the 1st.
	offset := (int(first.Weekday()) + 6) % 7

	row := make([]tele.Btn, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, markup.Data(" ", keyCalIgnore))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		row = append(row, markup.Data(fmt.Sprintf("%d", day), keyCalDay, date))
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]tele.Btn, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, markup.Data(" ", keyCalIgnore))
		}
		rows = append(rows, row)
	}

	markup.InlineKeyboard = keyboard.ToInlineKeyboard(rows)
	return markup
}
