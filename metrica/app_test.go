package metrica

import (
	"strings"
	"testing"
	"time"

	coreconfig "github.com/metrica-project/metrica-bot/core/config"
)

func testConfig(t *testing.T) *coreconfig.Config {
	t.Helper()
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "123:test-token"
	if err := coreconfig.Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func TestNewWiresEverything(t *testing.T) {
	app, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, cmd := range []string{"/start", "/help", "/about", "/get_my_id", "/register", "/cancel"} {
		if _, _, ok := app.Registry().LookupCommand(cmd); !ok {
			t.Errorf("command %s not registered", cmd)
		}
	}
	for _, key := range []string{"start", "menu", "calendar", "cal_day", "add_order", "order_list"} {
		if _, ok := app.Registry().GetCallback(key); !ok {
			t.Errorf("callback %s not registered", key)
		}
	}

	opts, err := app.TelegramRunOptions()
	if err != nil {
		t.Fatalf("run options: %v", err)
	}
	// 6 commands + callback + text + 6 media kinds.
	if len(opts.Routes) != 14 {
		t.Fatalf("routes = %d", len(opts.Routes))
	}
	if len(opts.Middlewares) == 0 {
		t.Fatal("middleware chain is empty")
	}
}

func TestSubmenuLayout(t *testing.T) {
	m, err := buildMenus()
	if err != nil {
		t.Fatalf("build menus: %v", err)
	}
	rows := m.sub.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("submenu rows = %d", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 2 || len(rows[2]) != 1 {
		t.Fatalf("submenu row widths = %d, %d, %d", len(rows[0]), len(rows[1]), len(rows[2]))
	}
	if rows[2][0].Unique != "start" {
		t.Fatalf("last row key = %q", rows[2][0].Unique)
	}
}

func TestHiddenCommandsNotPublished(t *testing.T) {
	app, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, c := range app.Registry().ListCommands(true) {
		if c.Text == "/get_my_id" {
			t.Fatal("/get_my_id should be hidden from the command menu")
		}
	}
}

func TestCalendarMarkup(t *testing.T) {
	m := calendarMarkup(2026, time.August)

	if len(m.InlineKeyboard) < 6 {
		t.Fatalf("rows = %d", len(m.InlineKeyboard))
	}
	header := m.InlineKeyboard[0]
	if len(header) != 3 {
		t.Fatalf("header cells = %d", len(header))
	}
	if header[1].Text != "August 2026" {
		t.Fatalf("header = %q", header[1].Text)
	}
	if !strings.Contains(header[0].Data, "2026:7") {
		t.Fatalf("prev nav = %q", header[0].Data)
	}
	if !strings.Contains(header[2].Data, "2026:9") {
		t.Fatalf("next nav = %q", header[2].Data)
	}

	var days int
	var first string
	for _, row := range m.InlineKeyboard[2:] {
		if len(row) != 7 {
			t.Fatalf("day row width = %d", len(row))
		}
		for _, cell := range row {
			if cell.Unique == keyCalDay {
				days++
				if first == "" {
					first = cell.Data
				}
			}
		}
	}
	if days != 31 {
		t.Fatalf("day cells = %d", days)
	}
	if first != "2026-08-01" {
		t.Fatalf("first day = %q", first)
	}
}
