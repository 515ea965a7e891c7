package flows

import (
	"testing"

	"github.com/metrica-project/metrica-bot/core/telegram/state"
	"github.com/metrica-project/metrica-bot/metrica/orders"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	sender *tele.User
	text   string
	cb     *tele.Callback
	kv     map[string]any
	sent   []string
}

func textInput(userID int64, text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, text: text, kv: map[string]any{}}
}

func callbackInput(userID int64, key string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		cb:     &tele.Callback{Data: "\f" + key},
		kv:     map[string]any{},
	}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Chat() *tele.Chat         { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update      { return tele.Update{ID: 1, Callback: f.cb} }
func (f *fakeContext) Callback() *tele.Callback { return f.cb }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Get(k string) any         { return f.kv[k] }
func (f *fakeContext) Set(k string, v any)      { f.kv[k] = v }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, opts ...interface{}) error {
	return f.Send(what, opts...)
}

func step(t *testing.T, mgr state.Manager, c *fakeContext) {
	t.Helper()
	if err := mgr.HandleUpdate(c); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestRegisterFlowCollectsAndClears(t *testing.T) {
	mgr := state.NewMemoryManager()
	flow := NewRegisterFlow()
	if err := flow.Bind(mgr); err != nil {
		t.Fatalf("bind: %v", err)
	}

	const uid = int64(10)
	if err := flow.Start(textInput(uid, "/register"), mgr); err != nil {
		t.Fatalf("start: %v", err)
	}
	if mgr.GetState(uid) != StateRegisterName {
		t.Fatalf("state = %s", mgr.GetState(uid))
	}

	step(t, mgr, textInput(uid, "Alice"))
	sess := mgr.Get(uid)
	if sess.State != StateRegisterAge || sess.Data["name"] != "Alice" {
		t.Fatalf("after name: %+v", sess)
	}

	// Bad age keeps the step.
	step(t, mgr, textInput(uid, "not a number"))
	if mgr.GetState(uid) != StateRegisterAge {
		t.Fatalf("state after bad age = %s", mgr.GetState(uid))
	}

	step(t, mgr, textInput(uid, "30"))
	if mgr.InProgress(uid) {
		t.Fatal("session should be gone after completion")
	}
	if sess := mgr.Get(uid); len(sess.Data) != 0 {
		t.Fatalf("data not cleared: %+v", sess.Data)
	}
}

func TestOrderFlowEndToEnd(t *testing.T) {
	store := orders.NewStore()
	mgr := state.NewMemoryManager()
	flow, err := NewOrderFlow(store)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := flow.Bind(mgr); err != nil {
		t.Fatalf("bind: %v", err)
	}

	const uid = int64(20)
	if err := flow.StartWithDate(callbackInput(uid, "add_order"), mgr, "2026-08-29"); err != nil {
		t.Fatalf("start: %v", err)
	}

	step(t, mgr, textInput(uid, "Acme Corp"))
	step(t, mgr, callbackInput(uid, KeySkipDescription))
	step(t, mgr, textInput(uid, "Bob"))

	// Invalid income re-prompts without advancing.
	step(t, mgr, textInput(uid, "lots"))
	if mgr.GetState(uid) != StateOrderIncome {
		t.Fatalf("state after bad income = %s", mgr.GetState(uid))
	}

	step(t, mgr, textInput(uid, "1000,50"))
	step(t, mgr, textInput(uid, "acme@example.com"))
	if mgr.GetState(uid) != StateOrderConfirm {
		t.Fatalf("state = %s", mgr.GetState(uid))
	}

	step(t, mgr, callbackInput(uid, KeyConfirmOrder))
	if mgr.InProgress(uid) {
		t.Fatal("session should end after confirmation")
	}

	got := store.List()
	if len(got) != 1 {
		t.Fatalf("orders = %d", len(got))
	}
	o := got[0]
	if o.Date != "2026-08-29" || o.Client != "Acme Corp" || o.Employee != "Bob" ||
		o.Income != 1000.50 || o.Contact != "acme@example.com" || o.Description != "" {
		t.Fatalf("order = %+v", o)
	}
}

func TestOrderFlowAcceptsZeroIncome(t *testing.T) {
	store := orders.NewStore()
	mgr := state.NewMemoryManager()
	flow, err := NewOrderFlow(store)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := flow.Bind(mgr); err != nil {
		t.Fatalf("bind: %v", err)
	}

	const uid = int64(23)
	_ = flow.StartWithDate(callbackInput(uid, "add_order"), mgr, "2026-08-29")
	step(t, mgr, textInput(uid, "Acme Corp"))
	step(t, mgr, callbackInput(uid, KeySkipDescription))
	step(t, mgr, textInput(uid, "Bob"))

	// Negative income re-prompts, zero is a valid order value.
	step(t, mgr, textInput(uid, "-5"))
	if mgr.GetState(uid) != StateOrderIncome {
		t.Fatalf("state after negative income = %s", mgr.GetState(uid))
	}
	step(t, mgr, textInput(uid, "0"))
	sess := mgr.Get(uid)
	if sess.State != StateOrderContact || sess.Data["income"] != "0.00" {
		t.Fatalf("zero income rejected: %+v", sess)
	}
}

func TestOrderFlowTypedDate(t *testing.T) {
	store := orders.NewStore()
	mgr := state.NewMemoryManager()
	flow, err := NewOrderFlow(store)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := flow.Bind(mgr); err != nil {
		t.Fatalf("bind: %v", err)
	}

	const uid = int64(21)
	if err := flow.StartTyped(textInput(uid, ""), mgr); err != nil {
		t.Fatalf("start: %v", err)
	}

	step(t, mgr, textInput(uid, "not a date"))
	if mgr.GetState(uid) != StateOrderDate {
		t.Fatalf("state after bad date = %s", mgr.GetState(uid))
	}

	step(t, mgr, textInput(uid, "29.08.2026"))
	sess := mgr.Get(uid)
	if sess.State != StateOrderClient || sess.Data["date"] != "2026-08-29" {
		t.Fatalf("after date: %+v", sess)
	}
}

func TestOrderFlowCancelMidway(t *testing.T) {
	store := orders.NewStore()
	mgr := state.NewMemoryManager()
	flow, err := NewOrderFlow(store)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := flow.Bind(mgr); err != nil {
		t.Fatalf("bind: %v", err)
	}

	const uid = int64(22)
	_ = flow.StartWithDate(callbackInput(uid, "add_order"), mgr, "2026-08-29")
	step(t, mgr, textInput(uid, "Acme Corp"))

	step(t, mgr, callbackInput(uid, KeyCancelOrderForm))
	if mgr.InProgress(uid) {
		t.Fatal("cancel should end the session")
	}
	if store.Len() != 0 {
		t.Fatal("cancelled order must not be stored")
	}
}
