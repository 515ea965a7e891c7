package flows

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metrica-project/metrica-bot/core/telegram/callbacks"
	"github.com/metrica-project/metrica-bot/core/telegram/format"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"
	"github.com/metrica-project/metrica-bot/core/telegram/keyboard"
	"github.com/metrica-project/metrica-bot/core/telegram/state"
	"github.com/metrica-project/metrica-bot/metrica/orders"

	tele "gopkg.in/telebot.v4"
)

// Order form steps.
const (
	StateOrderDate     state.State = "order_date"
	StateOrderClient   state.State = "order_client"
	StateOrderDesc     state.State = "order_description"
	StateOrderEmployee state.State = "order_employee"
	StateOrderIncome   state.State = "order_income"
	StateOrderContact  state.State = "order_contact"
	StateOrderConfirm  state.State = "order_confirm"
)

// Callback keys the order form reacts to mid-flow.
const (
	KeySkipDescription = "skip_description"
	KeySkipContact     = "skip_contact"
	KeyConfirmOrder    = "confirm_order"
	KeyCancelOrderForm = "cancel_order_form"
)

// OrderFlow walks the user through the order form and appends the result
// to the order book.
type OrderFlow struct {
	store *orders.Store

	cancelMenu  *tele.ReplyMarkup
	skipMenu    *tele.ReplyMarkup
	confirmMenu *tele.ReplyMarkup
}

// NewOrderFlow builds the conversation and its inline menus.
func NewOrderFlow(store *orders.Store) (*OrderFlow, error) {
	cancel := keyboard.Btn{Text: "❌ Cancel", Unique: KeyCancelOrderForm}

	cancelMenu := keyboard.SingleCancelMarkup(KeyCancelOrderForm)
	skipMenu, err := keyboard.Menu(keyboard.Btn{Text: "⏭️ Skip", Unique: KeySkipDescription}, cancel)
	if err != nil {
		return nil, err
	}
	confirmMenu, err := keyboard.MenuRows(
		[]keyboard.Btn{{Text: "✅ Confirm", Unique: KeyConfirmOrder}},
		[]keyboard.Btn{cancel},
	)
	if err != nil {
		return nil, err
	}

	return &OrderFlow{
		store:       store,
		cancelMenu:  cancelMenu,
		skipMenu:    skipMenu,
		confirmMenu: confirmMenu,
	}, nil
}

// Bind registers the form's steps with the manager.
func (f *OrderFlow) Bind(mgr state.Manager) error {
	steps := map[state.State]state.StepFunc{
		StateOrderDate:     f.stepDate,
		StateOrderClient:   f.stepClient,
		StateOrderDesc:     f.stepDescription,
		StateOrderEmployee: f.stepEmployee,
		StateOrderIncome:   f.stepIncome,
		StateOrderContact:  f.stepContact,
		StateOrderConfirm:  f.stepConfirm,
	}
	for st, fn := range steps {
		if err := mgr.Handle(st, fn); err != nil {
			return err
		}
	}
	return nil
}

// StartWithDate begins the form with a date already picked from the calendar.
func (f *OrderFlow) StartWithDate(c tele.Context, mgr state.Manager, date string) error {
	mgr.Begin(c.Sender().ID, StateOrderClient, map[string]string{"date": date})
	text := fmt.Sprintf("<b>➕ Add New Order</b>\n\n📅 <b>Date:</b> %s\n\nLet's start by entering the client name:",
		format.EscapeHTML(date))
	return helpers.EditOrSendHTML(c, text, f.cancelMenu)
}

// StartTyped begins the form by asking for the order date as text.
func (f *OrderFlow) StartTyped(c tele.Context, mgr state.Manager) error {
	mgr.Begin(c.Sender().ID, StateOrderDate, nil)
	return helpers.EditOrSendHTML(c,
		"<b>➕ Add New Order</b>\n\nEnter the order date (e.g. 2026-08-29 or 29.08.2026):",
		f.cancelMenu)
}

func (f *OrderFlow) cancelled(c tele.Context) (state.State, error) {
	return state.StateEnd, helpers.SendText(c, "Order cancelled.")
}

func (f *OrderFlow) stepDate(c tele.Context, s *state.Session) (state.State, error) {
	if callbacks.CallbackKey(c) == KeyCancelOrderForm {
		return f.cancelled(c)
	}
	t, ok := helpers.ParseFlexibleDate(c.Text())
	if !ok {
		return StateOrderDate, helpers.SendText(c, "Please enter a valid date (e.g. 2026-08-29):")
	}
	s.Data["date"] = t.Format("2006-01-02")
	return StateOrderClient, helpers.SendHTML(c,
		fmt.Sprintf("📅 <b>Date:</b> %s\n\nNow enter the client name:", s.Data["date"]),
		f.cancelMenu)
}

func (f *OrderFlow) stepClient(c tele.Context, s *state.Session) (state.State, error) {
	if callbacks.CallbackKey(c) == KeyCancelOrderForm {
		return f.cancelled(c)
	}
	client := strings.TrimSpace(c.Text())
	if client == "" {
		return StateOrderClient, helpers.SendText(c, "Please enter a valid client name:")
	}
	s.Data["client"] = client
	text := fmt.Sprintf("<b>Client:</b> %s\n\nNow enter a description for this order:",
		format.EscapeHTML(client))
	return StateOrderDesc, helpers.SendHTML(c, text, f.skipMenu)
}

func (f *OrderFlow) stepDescription(c tele.Context, s *state.Session) (state.State, error) {
	switch callbacks.CallbackKey(c) {
	case KeyCancelOrderForm:
		return f.cancelled(c)
	case KeySkipDescription:
		s.Data["description"] = ""
		return StateOrderEmployee, helpers.SendHTML(c,
			"Description skipped.\n\nNow enter the employee name:", f.cancelMenu)
	}
	s.Data["description"] = strings.TrimSpace(c.Text())
	return StateOrderEmployee, helpers.SendHTML(c,
		"Now enter the employee name:", f.cancelMenu)
}

func (f *OrderFlow) stepEmployee(c tele.Context, s *state.Session) (state.State, error) {
	if callbacks.CallbackKey(c) == KeyCancelOrderForm {
		return f.cancelled(c)
	}
	employee := strings.TrimSpace(c.Text())
	if employee == "" {
		return StateOrderEmployee, helpers.SendText(c, "Please enter a valid employee name:")
	}
	s.Data["employee"] = employee
	return StateOrderIncome, helpers.SendHTML(c,
		fmt.Sprintf("<b>Employee:</b> %s\n\nNow enter the income value (e.g. 1000.50):",
			format.EscapeHTML(employee)),
		f.cancelMenu)
}

func (f *OrderFlow) stepIncome(c tele.Context, s *state.Session) (state.State, error) {
	if callbacks.CallbackKey(c) == KeyCancelOrderForm {
		return f.cancelled(c)
	}
	raw := strings.ReplaceAll(strings.TrimSpace(c.Text()), ",", ".")
	income, err := strconv.ParseFloat(raw, 64)
	if err != nil || income < 0 {
		return StateOrderIncome, helpers.SendText(c, "Please enter a valid non-negative value (e.g. 1000.50):")
	}
	s.Data["income"] = strconv.FormatFloat(income, 'f', 2, 64)

	skipContact, buildErr := keyboard.Menu(
		keyboard.Btn{Text: "⏭️ Skip", Unique: KeySkipContact},
		keyboard.Btn{Text: "❌ Cancel", Unique: KeyCancelOrderForm},
	)
	if buildErr != nil {
		return StateOrderIncome, buildErr
	}
	return StateOrderContact, helpers.SendHTML(c,
		fmt.Sprintf("<b>Income:</b> %s\n\nNow enter the client contact (phone or email), optional:",
			s.Data["income"]),
		skipContact)
}

func (f *OrderFlow) stepContact(c tele.Context, s *state.Session) (state.State, error) {
	switch callbacks.CallbackKey(c) {
	case KeyCancelOrderForm:
		return f.cancelled(c)
	case KeySkipContact:
		s.Data["contact"] = ""
	default:
		s.Data["contact"] = strings.TrimSpace(c.Text())
	}
	return StateOrderConfirm, helpers.SendHTML(c, f.summary(s), f.confirmMenu)
}

func (f *OrderFlow) stepConfirm(c tele.Context, s *state.Session) (state.State, error) {
	switch callbacks.CallbackKey(c) {
	case KeyCancelOrderForm:
		return f.cancelled(c)
	case KeyConfirmOrder:
		income, _ := strconv.ParseFloat(s.Data["income"], 64)
		saved := f.store.Add(orders.Order{
			Date:        s.Data["date"],
			Client:      s.Data["client"],
			Description: s.Data["description"],
			Employee:    s.Data["employee"],
			Income:      income,
			Contact:     s.Data["contact"],
		})
		text := fmt.Sprintf(
			"<b>✅ Order Created Successfully!</b>\n\n<b>Order ID:</b> %d\n<b>Date:</b> %s\n<b>Client:</b> %s\n<b>Income:</b> %.2f",
			saved.ID, format.EscapeHTML(saved.Date), format.EscapeHTML(saved.Client), saved.Income)
		return state.StateEnd, helpers.SendHTML(c, text)
	}
	// Anything else re-shows the summary.
	return StateOrderConfirm, helpers.SendHTML(c, f.summary(s), f.confirmMenu)
}

func (f *OrderFlow) summary(s *state.Session) string {
	var b strings.Builder
	b.WriteString("<b>📋 Order Summary</b>\n\n")
	fmt.Fprintf(&b, "📅 <b>Date:</b> %s\n", format.EscapeHTML(s.Data["date"]))
	fmt.Fprintf(&b, "👤 <b>Client:</b> %s\n", format.EscapeHTML(s.Data["client"]))
	if s.Data["description"] != "" {
		fmt.Fprintf(&b, "📝 <b>Description:</b> %s\n", format.EscapeHTML(s.Data["description"]))
	}
	fmt.Fprintf(&b, "💼 <b>Employee:</b> %s\n", format.EscapeHTML(s.Data["employee"]))
	fmt.Fprintf(&b, "💰 <b>Income:</b> %s\n", s.Data["income"])
	if s.Data["contact"] != "" {
		fmt.Fprintf(&b, "📞 <b>Contact:</b> %s\n", format.EscapeHTML(s.Data["contact"]))
	}
	b.WriteString("\nPlease confirm to save this order:")
	return b.String()
}
