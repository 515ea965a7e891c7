package telegram

import (
	"errors"
	"testing"

	"github.com/metrica-project/metrica-bot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommandRoundTrip(t *testing.T) {
	reg := NewRegistry()
	cmd := commands.Command{Handler: noop, Description: "start the bot", Aliases: []string{"go"}}
	if err := reg.RegisterCommand("/start", cmd); err != nil {
		t.Fatalf("register: %v", err)
	}

	key, got, ok := reg.LookupCommand("/start")
	if !ok || key != "/start" || got.Description != "start the bot" {
		t.Fatalf("lookup failed: key=%s ok=%v", key, ok)
	}

	// Lookup without slash and via alias resolves to the canonical key.
	if key, _, ok = reg.LookupCommand("start"); !ok || key != "/start" {
		t.Fatalf("slashless lookup: key=%s ok=%v", key, ok)
	}
	if key, _, ok = reg.LookupCommand("/go"); !ok || key != "/start" {
		t.Fatalf("alias lookup: key=%s ok=%v", key, ok)
	}
}

func TestRegistryDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	cmd := commands.Command{Handler: noop, Description: "d"}
	if err := reg.RegisterCommand("/x", cmd); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCommand("/x", cmd); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	if err := reg.RegisterCallback("menu", noop); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	if err := reg.RegisterCallback("menu", noop); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	if err := reg.RegisterMedia(MediaPhoto, noop); err != nil {
		t.Fatalf("register media: %v", err)
	}
	if err := reg.RegisterMedia(MediaPhoto, noop); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Same key in different namespaces is not a conflict.
	if err := reg.RegisterCallback("x", noop); err != nil {
		t.Fatalf("cross-namespace key rejected: %v", err)
	}
}

func TestRegistryUnknownKeyIsNotAnError(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.GetCallback("nope"); ok {
		t.Fatal("unexpected callback hit")
	}
	if _, ok := reg.GetMedia("nope"); ok {
		t.Fatal("unexpected media hit")
	}
	if _, _, ok := reg.LookupCommand("/nope"); ok {
		t.Fatal("unexpected command hit")
	}
}

func TestRegistryInvalidRegistration(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "d"}); err == nil {
		t.Fatal("expected error for missing slash prefix")
	}
	if err := reg.RegisterCommand("/start", commands.Command{Description: "d"}); err == nil {
		t.Fatal("expected error for nil handler")
	}
	if err := reg.RegisterCallback("", noop); err == nil {
		t.Fatal("expected error for empty callback key")
	}
	if err := reg.RegisterMedia(MediaVideo, nil); err == nil {
		t.Fatal("expected error for nil media handler")
	}
}

func TestRegistryListCommandsHidesHidden(t *testing.T) {
	reg := NewRegistry()
	_ = reg.RegisterCommand("/a", commands.Command{Handler: noop, Description: "a"})
	_ = reg.RegisterCommand("/b", commands.Command{Handler: noop, Description: "b", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/a" {
		t.Fatalf("visible = %v", visible)
	}
	all := reg.ListCommands(false)
	if len(all) != 2 {
		t.Fatalf("all = %v", all)
	}
}
