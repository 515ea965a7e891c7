package keyboard

import "testing"

func TestMenuRowsLayout(t *testing.T) {
	m, err := MenuRows(
		[]Btn{{Text: "Orders", Unique: "orders"}, {Text: "Employees", Unique: "employees"}},
		[]Btn{{Text: "Back", Unique: "menu"}},
	)
	if err != nil {
		t.Fatalf("menu rows: %v", err)
	}
	if len(m.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d", len(m.InlineKeyboard))
	}
	if len(m.InlineKeyboard[0]) != 2 || len(m.InlineKeyboard[1]) != 1 {
		t.Fatalf("row widths = %d, %d", len(m.InlineKeyboard[0]), len(m.InlineKeyboard[1]))
	}
	if m.InlineKeyboard[0][0].Text != "Orders" {
		t.Fatalf("label = %q", m.InlineKeyboard[0][0].Text)
	}
}

func TestMenuRejectsInvalidButtons(t *testing.T) {
	if _, err := Menu(Btn{Text: "", Unique: "x"}); err == nil {
		t.Fatal("empty label must fail")
	}
	if _, err := Menu(Btn{Text: "A", Unique: ""}); err == nil {
		t.Fatal("empty key must fail")
	}
	if _, err := Menu(Btn{Text: "A", Unique: "dup"}, Btn{Text: "B", Unique: "dup"}); err == nil {
		t.Fatal("duplicate key must fail")
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	buttons := []Btn{
		{Text: "1", Unique: "d1"},
		{Text: "2", Unique: "d2"},
		{Text: "3", Unique: "d3"},
		{Text: "4", Unique: "d4"},
		{Text: "5", Unique: "d5"},
	}
	m, err := InlineButtonsNPerRow(buttons, 2)
	if err != nil {
		t.Fatalf("n per row: %v", err)
	}
	if len(m.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d", len(m.InlineKeyboard))
	}
	if len(m.InlineKeyboard[2]) != 1 {
		t.Fatalf("last row width = %d", len(m.InlineKeyboard[2]))
	}
}

func TestSingleCancelMarkup(t *testing.T) {
	m := SingleCancelMarkup("cancel_form")
	if len(m.InlineKeyboard) != 1 || len(m.InlineKeyboard[0]) != 1 {
		t.Fatalf("expected a single button, got %v", m.InlineKeyboard)
	}
	btn := m.InlineKeyboard[0][0]
	if btn.Unique != "cancel_form" {
		t.Fatalf("key = %q", btn.Unique)
	}
	if btn.Text != defaultCancelButtonText {
		t.Fatalf("label = %q", btn.Text)
	}

	m = SingleCancelMarkup("cancel_form", "payload", "Stop")
	btn = m.InlineKeyboard[0][0]
	if btn.Data != "payload" || btn.Text != "Stop" {
		t.Fatalf("overrides not applied: data=%q text=%q", btn.Data, btn.Text)
	}
}
