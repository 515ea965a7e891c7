package state

import (
	"errors"
	"sync"
	"testing"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the few tele.Context methods the manager touches.
// Calls to anything else panic, which is what we want in tests.
type fakeContext struct {
	tele.Context
	sender *tele.User
	kv     map[string]any
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, kv: map[string]any{}}
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Chat() *tele.Chat   { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1}
}
func (f *fakeContext) Get(k string) any  { return f.kv[k] }
func (f *fakeContext) Set(k string, v any) { f.kv[k] = v }

const (
	stepOne State = "one"
	stepTwo State = "two"
)

func TestManagerTransitions(t *testing.T) {
	mgr := NewMemoryManager()
	if err := mgr.Handle(stepOne, func(c tele.Context, s *Session) (State, error) {
		s.Data["first"] = "done"
		return stepTwo, nil
	}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := mgr.Handle(stepTwo, func(c tele.Context, s *Session) (State, error) {
		s.Data["second"] = "done"
		return StateEnd, nil
	}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	c := newFakeContext(7)
	if mgr.InProgress(7) {
		t.Fatal("no session should exist yet")
	}

	mgr.Begin(7, stepOne, nil)
	if got := mgr.GetState(7); got != stepOne {
		t.Fatalf("state = %s", got)
	}

	if err := mgr.HandleUpdate(c); err != nil {
		t.Fatalf("handle update: %v", err)
	}
	sess := mgr.Get(7)
	if sess.State != stepTwo || sess.Data["first"] != "done" {
		t.Fatalf("after step one: %+v", sess)
	}

	if err := mgr.HandleUpdate(c); err != nil {
		t.Fatalf("handle update: %v", err)
	}
	// StateEnd destroys the session and its data.
	if mgr.InProgress(7) {
		t.Fatal("session should be gone after end")
	}
	if sess := mgr.Get(7); len(sess.Data) != 0 || sess.State != StateIdle {
		t.Fatalf("session not cleared: %+v", sess)
	}
}

func TestManagerStepErrorKeepsState(t *testing.T) {
	mgr := NewMemoryManager()
	boom := errors.New("boom")
	_ = mgr.Handle(stepOne, func(c tele.Context, s *Session) (State, error) {
		return StateEnd, boom
	})

	mgr.Begin(9, stepOne, map[string]string{"k": "v"})
	if err := mgr.HandleUpdate(newFakeContext(9)); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	sess := mgr.Get(9)
	if sess.State != stepOne || sess.Data["k"] != "v" {
		t.Fatalf("session should be untouched after error: %+v", sess)
	}
}

func TestManagerForceEnd(t *testing.T) {
	mgr := NewMemoryManager()
	_ = mgr.Handle(stepOne, func(c tele.Context, s *Session) (State, error) {
		return stepOne, nil
	})

	mgr.Begin(5, stepOne, map[string]string{"name": "Alice"})
	mgr.ForceEnd(5)
	if mgr.InProgress(5) {
		t.Fatal("session should be gone after ForceEnd")
	}
	if sess := mgr.Get(5); len(sess.Data) != 0 {
		t.Fatalf("data should be cleared, got %+v", sess.Data)
	}

	// ForceEnd for a user without a session is a no-op.
	mgr.ForceEnd(6)
}

func TestManagerDuplicateStep(t *testing.T) {
	mgr := NewMemoryManager()
	fn := func(c tele.Context, s *Session) (State, error) { return StateEnd, nil }
	if err := mgr.Handle(stepOne, fn); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := mgr.Handle(stepOne, fn); err == nil {
		t.Fatal("expected duplicate step error")
	}
	if err := mgr.Handle(StateIdle, fn); err == nil {
		t.Fatal("idle must not be registrable")
	}
	if err := mgr.Handle(StateEnd, fn); err == nil {
		t.Fatal("end must not be registrable")
	}
}

func TestManagerConcurrentSessions(t *testing.T) {
	mgr := NewMemoryManager()
	_ = mgr.Handle(stepOne, func(c tele.Context, s *Session) (State, error) {
		n := s.Data["n"]
		s.Data["n"] = n + "x"
		if len(s.Data["n"]) >= 50 {
			return StateEnd, nil
		}
		return stepOne, nil
	})

	var wg sync.WaitGroup
	for uid := int64(1); uid <= 8; uid++ {
		mgr.Begin(uid, stepOne, nil)
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			c := newFakeContext(uid)
			for i := 0; i < 50; i++ {
				_ = mgr.HandleUpdate(c)
			}
		}(uid)
	}
	wg.Wait()

	for uid := int64(1); uid <= 8; uid++ {
		if mgr.InProgress(uid) {
			t.Fatalf("user %d still in progress", uid)
		}
	}
}

func TestManagerSerializesSingleSession(t *testing.T) {
	mgr := NewMemoryManager()
	var active, maxActive int
	var mu sync.Mutex
	_ = mgr.Handle(stepOne, func(c tele.Context, s *Session) (State, error) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()

		mu.Lock()
		active--
		mu.Unlock()
		return stepOne, nil
	})

	mgr.Begin(3, stepOne, nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.HandleUpdate(newFakeContext(3))
		}()
	}
	wg.Wait()

	if maxActive > 1 {
		t.Fatalf("steps for the same session overlapped: max concurrency %d", maxActive)
	}
}
