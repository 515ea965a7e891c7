package metrica

import (
	"github.com/metrica-project/metrica-bot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// menus holds the static inline keyboards built once at startup.
type menus struct {
	main      *tele.ReplyMarkup
	sub       *tele.ReplyMarkup
	orders    *tele.ReplyMarkup
	employees *tele.ReplyMarkup
}

func buildMenus() (*menus, error) {
	main, err := keyboard.Menu(
		keyboard.Btn{Text: "Menu", Unique: "menu"},
		keyboard.Btn{Text: "About", Unique: "about"},
		keyboard.Btn{Text: "Help", Unique: "help"},
	)
	if err != nil {
		return nil, err
	}

	sub, err := keyboard.InlineButtonsNPerRow([]keyboard.Btn{
		{Text: "Calendar", Unique: "calendar"},
		{Text: "Orders", Unique: "orders"},
		{Text: "Employees", Unique: "employees"},
		{Text: "Tools", Unique: "tools"},
		{Text: "← Back", Unique: "start"},
	}, 2)
	if err != nil {
		return nil, err
	}

	ordersMenu, err := keyboard.Menu(
		keyboard.Btn{Text: "➕ Add Order", Unique: "order_add"},
		keyboard.Btn{Text: "📋 Show Orders List", Unique: "order_list"},
		keyboard.Btn{Text: "← Back to Menu", Unique: "menu"},
	)
	if err != nil {
		return nil, err
	}

	employeesMenu, err := keyboard.Menu(
		keyboard.Btn{Text: "➕ Add Employee", Unique: "add_employee"},
		keyboard.Btn{Text: "📋 Show Employees List", Unique: "employee_list"},
		keyboard.Btn{Text: "← Back to Menu", Unique: "menu"},
	)
	if err != nil {
		return nil, err
	}

	return &menus{
		main:      main,
		sub:       sub,
		orders:    ordersMenu,
		employees: employeesMenu,
	}, nil
}
