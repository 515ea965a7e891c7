package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// RunModeWebhook selects webhook delivery of Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling delivery of Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	defaultWebhookPort   = 8443
	defaultWebhookListen = "0.0.0.0"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings. Leaving URL empty keeps the bot
// in long-polling mode.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	Debug     bool   `yaml:"debug" envconfig:"DEBUG"`
	Format    string `yaml:"format"`
	KeysOrder string `yaml:"keys_order"`
	Dir       string `yaml:"dir"`
	BotFile   string `yaml:"bot_file"`
}

// AccessConfig lists Telegram user IDs allowed to use restricted handlers.
type AccessConfig struct {
	AllowedUsers []int64 `yaml:"allowed_users" envconfig:"ALLOWED_USERS"`
}

// RateLimitConfig holds settings for per-user rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates all startup configuration of the bot.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	Access    AccessConfig    `yaml:"access"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// RunMode is derived during Normalize from the webhook settings.
	RunMode string `yaml:"-"`
}

// Load reads configuration from the environment, an optional .env file, and
// an optional YAML file pointed to by CONFIG_PATH. Environment values win
// over the YAML file.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars are the primary source.
	_ = godotenv.Load()

	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults. It is exported so
// tests and embedders can run the same rules on hand-built configs.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("config: BOT_TOKEN is required; set it in the environment or a .env file (get a token from @BotFather)")
	}
	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)

	level := strings.ToUpper(strings.TrimSpace(cfg.Logging.Level))
	switch level {
	case "":
		level = "INFO"
	case "DEBUG", "INFO", "ERROR":
	case "WARNING", "WARN":
		level = "WARNING"
	default:
		return fmt.Errorf("config: invalid LOG_LEVEL %q; allowed: DEBUG, INFO, WARNING, ERROR", cfg.Logging.Level)
	}
	cfg.Logging.Level = level

	if cfg.Webhook.Port < 0 {
		return fmt.Errorf("config: WEBHOOK_PORT must not be negative, got %d", cfg.Webhook.Port)
	}

	if strings.TrimSpace(cfg.Webhook.URL) != "" {
		cfg.RunMode = RunModeWebhook
		if cfg.Webhook.Port == 0 {
			cfg.Webhook.Port = defaultWebhookPort
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			cfg.Webhook.Listen = defaultWebhookListen
		}
	} else {
		cfg.RunMode = RunModeLongpoll
		if cfg.Webhook.Port == 0 {
			cfg.Webhook.Port = defaultWebhookPort
		}
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("config: TELEGRAM_LONGPOLL_TIMEOUT_SECONDS must be >= 0")
		}
	}

	for _, id := range cfg.Access.AllowedUsers {
		if id <= 0 {
			return fmt.Errorf("config: ALLOWED_USERS contains invalid user id %d", id)
		}
	}

	allowed := map[string]struct{}{"callback": {}, "message": {}}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("config: invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

// AllowedSet returns the allowed user IDs as a lookup set.
func (c *Config) AllowedSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(c.Access.AllowedUsers))
	for _, id := range c.Access.AllowedUsers {
		set[id] = struct{}{}
	}
	return set
}
