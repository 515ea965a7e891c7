package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		data    string
		unique  string
		payload string
	}{
		{"\fcal_day|2025-08-29", "cal_day", "2025-08-29"},
		{"\fmenu", "menu", ""},
		{"confirm_order", "confirm_order", ""},
		{"\fcal_nav|2025:9", "cal_nav", "2025:9"},
		{"", "", ""},
	}
	for _, tc := range cases {
		u, p := ParseCallbackData(&tele.Callback{Data: tc.data})
		if u != tc.unique || p != tc.payload {
			t.Errorf("ParseCallbackData(%q) = %q, %q; want %q, %q", tc.data, u, p, tc.unique, tc.payload)
		}
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	if u, p := ParseCallbackData(nil); u != "" || p != "" {
		t.Fatalf("nil callback should parse to empty values, got %q, %q", u, p)
	}
}
