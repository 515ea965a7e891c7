package callbacks

import (
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// PayloadParts splits the callback payload into parts using the given separator.
func PayloadParts(c tele.Context, sep string) ([]string, error) {
	p := CallbackPayload(c)
	if p == "" {
		return nil, strconv.ErrSyntax
	}
	return strings.Split(p, sep), nil
}

// PayloadDate parses the payload as an ISO date (2006-01-02),
// the format calendar keyboards put into day buttons.
func PayloadDate(c tele.Context) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", CallbackPayload(c), time.Local)
}

// PayloadTwoInt parses callback payload like "2025:8" into two ints.
func PayloadTwoInt(c tele.Context, sep string) (int, int, error) {
	parts, err := PayloadParts(c, sep)
	if err != nil {
		return 0, 0, err
	}
	if len(parts) != 2 {
		return 0, 0, strconv.ErrSyntax
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
