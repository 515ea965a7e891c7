// Package state provides a lightweight conversation FSM for Telegram bots.
// It is intentionally domain-agnostic so it can be reused across bots.
package state
