package metrica

import (
	"fmt"
	"strings"
	"time"

	"github.com/metrica-project/metrica-bot/core/telegram/callbacks"
	"github.com/metrica-project/metrica-bot/core/telegram/format"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"
	"github.com/metrica-project/metrica-bot/core/telegram/keyboard"
	"github.com/metrica-project/metrica-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerCallbacks() error {
	// Open to everyone, mirroring the open commands.
	open := map[string]tele.HandlerFunc{
		"start":      a.handleStart,
		"about":      a.handleAbout,
		"help":       a.handleHelp,
		keyCalIgnore: func(tele.Context) error { return nil },
	}
	// Everything below requires the allow-list.
	guarded := map[string]tele.HandlerFunc{
		"menu":          a.cbMenu,
		"calendar":      a.cbCalendar,
		keyCalNav:       a.cbCalendarNav,
		keyCalDay:       a.cbCalendarDay,
		"add_order":     a.cbAddOrder,
		"order_add":     a.cbOrderAdd,
		"order_list":    a.cbOrderList,
		"orders":        a.cbOrders,
		"employees":     a.cbEmployees,
		"add_employee":  a.cbComingSoon("Employee management"),
		"employee_list": a.cbComingSoon("Employee list"),
		"settings":      a.cbComingSoon("Settings panel"),
		"reports":       a.cbComingSoon("Reports"),
		"tools":         a.cbComingSoon("Tools"),
	}

	for key, h := range open {
		if err := a.reg.RegisterCallback(key, h); err != nil {
			return err
		}
	}
	guard := middleware.AllowedOnlyMiddleware(a.accessOptions())
	for key, h := range guarded {
		if err := a.reg.RegisterCallback(key, guard(h)); err != nil {
			return err
		}
	}

	a.reg.SetCallbackNotFound(func(c tele.Context) error {
		return helpers.SendText(c, "Unknown action. Please try again.")
	})
	return nil
}

func (a *App) cbMenu(c tele.Context) error {
	return helpers.SendHTML(c, "<b>Main Menu</b>\n\nChoose an option:", a.menus.sub)
}

func (a *App) cbOrders(c tele.Context) error {
	return helpers.SendHTML(c, "<b>Orders</b>\n\nChoose an option:", a.menus.orders)
}

func (a *App) cbEmployees(c tele.Context) error {
	return helpers.SendHTML(c, "<b>Employees</b>\n\nChoose an option:", a.menus.employees)
}

func (a *App) cbComingSoon(feature string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return helpers.SendHTML(c, fmt.Sprintf("<b>%s</b>\n\nComing soon!", feature))
	}
}

func (a *App) cbCalendar(c tele.Context) error {
	now := time.Now()
	return helpers.EditOrSendHTML(c,
		"<b>📅 Calendar</b>\n\nSelect a day:",
		calendarMarkup(now.Year(), now.Month()))
}

func (a *App) cbCalendarNav(c tele.Context) error {
	year, month, err := callbacks.PayloadTwoInt(c, ":")
	if err != nil || month < 1 || month > 12 {
		return a.cbCalendar(c)
	}
	// Navigation always comes from a button on an existing calendar message.
	return helpers.EditHTML(c,
		"<b>📅 Calendar</b>\n\nSelect a day:",
		calendarMarkup(year, time.Month(month)))
}

// cbCalendarDay shows the picked date with its orders and an add button.
func (a *App) cbCalendarDay(c tele.Context) error {
	t, err := callbacks.PayloadDate(c)
	if err != nil {
		return a.cbCalendar(c)
	}
	date := t.Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "<b>📅 Selected Date: %s</b>\n\n", t.Format("January 2, 2006"))
	b.WriteString("Orders for this date:\n")
	dayOrders := a.orders.ByDate(date)
	if len(dayOrders) == 0 {
		b.WriteString("• No orders found\n")
	} else {
		for _, o := range dayOrders {
			fmt.Fprintf(&b, "• #%d %s — %.2f\n", o.ID, format.EscapeHTML(o.Client), o.Income)
		}
	}
	b.WriteString("\nWould you like to add a new order?")

	markup, err := keyboard.Menu(
		keyboard.Btn{Text: "➕ Add Order", Unique: "add_order", Data: date},
		keyboard.Btn{Text: "📅 Back to Calendar", Unique: "calendar"},
	)
	if err != nil {
		return err
	}
	return helpers.EditOrSendHTML(c, b.String(), markup)
}

// cbAddOrder starts the order form with the date carried in the payload.
func (a *App) cbAddOrder(c tele.Context) error {
	t, err := callbacks.PayloadDate(c)
	if err != nil {
		return helpers.SendText(c, "Please use the calendar to select a date first.")
	}
	return a.orderFlow.StartWithDate(c, a.fsm, t.Format("2006-01-02"))
}

// cbOrderAdd starts the order form by asking for a typed date.
func (a *App) cbOrderAdd(c tele.Context) error {
	return a.orderFlow.StartTyped(c, a.fsm)
}

func (a *App) cbOrderList(c tele.Context) error {
	all := a.orders.List()
	if len(all) == 0 {
		return helpers.SendHTML(c, "<b>📋 Orders</b>\n\nNo orders yet.")
	}
	var b strings.Builder
	b.WriteString("<b>📋 Orders</b>\n\n")
	for _, o := range all {
		fmt.Fprintf(&b, "#%d — %s, %s, %.2f\n",
			o.ID, format.EscapeHTML(o.Date), format.EscapeHTML(o.Client), o.Income)
	}
	return helpers.SendHTML(c, b.String())
}
