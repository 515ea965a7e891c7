package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123456:TEST-TOKEN"},
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := &Config{}
	err := Normalize(cfg)
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "BOT_TOKEN") {
		t.Fatalf("error should mention BOT_TOKEN, got: %v", err)
	}

	cfg.Telegram.Token = "   "
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for blank token")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %s, expected longpoll", cfg.RunMode)
	}
	if cfg.Logging.Level != "INFO" {
		t.Fatalf("level = %s, expected INFO", cfg.Logging.Level)
	}
	if cfg.Logging.Debug {
		t.Fatal("debug should default to false")
	}
	if cfg.Webhook.Port != 8443 {
		t.Fatalf("webhook port = %d, expected 8443", cfg.Webhook.Port)
	}
}

func TestNormalizeWebhookMode(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.URL = "https://bot.example.com/hook"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RunMode != RunModeWebhook {
		t.Fatalf("run mode = %s, expected webhook", cfg.RunMode)
	}
	if cfg.Webhook.Listen == "" {
		t.Fatal("webhook listen should default")
	}
}

func TestNormalizeRejectsNegativePort(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.Port = -1
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for negative port in longpoll mode")
	}

	cfg = validConfig()
	cfg.Webhook.URL = "https://bot.example.com/hook"
	cfg.Webhook.Port = -1
	err := Normalize(cfg)
	if err == nil {
		t.Fatal("expected error for negative port in webhook mode")
	}
	if !strings.Contains(err.Error(), "WEBHOOK_PORT") {
		t.Fatalf("error should mention WEBHOOK_PORT, got: %v", err)
	}
}

func TestNormalizeLogLevels(t *testing.T) {
	cases := map[string]string{
		"":        "INFO",
		"debug":   "DEBUG",
		"Info":    "INFO",
		"warn":    "WARNING",
		"WARNING": "WARNING",
		"error":   "ERROR",
	}
	for in, want := range cases {
		cfg := validConfig()
		cfg.Logging.Level = in
		if err := Normalize(cfg); err != nil {
			t.Fatalf("normalize(%q): %v", in, err)
		}
		if cfg.Logging.Level != want {
			t.Fatalf("level(%q) = %s, expected %s", in, cfg.Logging.Level, want)
		}
	}

	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestNormalizeAllowedUsers(t *testing.T) {
	cfg := validConfig()
	cfg.Access.AllowedUsers = []int64{100, 200}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	set := cfg.AllowedSet()
	if _, ok := set[100]; !ok {
		t.Fatal("expected 100 in allowed set")
	}
	if _, ok := set[300]; ok {
		t.Fatal("unexpected 300 in allowed set")
	}

	cfg = validConfig()
	cfg.Access.AllowedUsers = []int64{-5}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for negative user id")
	}
}

func TestNormalizeRateLimitExcludes(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" {
		t.Fatalf("exclude not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclude kind")
	}
}
