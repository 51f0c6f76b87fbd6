// Package config loads the dashboard settings from an optional YAML file
// overlaid with SDVIG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FigmaConfig points the design-file client at an API host.
type FigmaConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"SDVIG_FIGMA_BASE_URL"`
}

// StorageConfig locates the local state database.
type StorageConfig struct {
	// Path of the SQLite file; empty -> ~/.sdvig/state.db
	Path string `yaml:"path" envconfig:"SDVIG_STORAGE_PATH"`
}

// TelegramConfig describes the host the mini app runs in.
type TelegramConfig struct {
	// InitData is the raw WebApp init data string handed over by the host.
	InitData string `yaml:"init_data" envconfig:"SDVIG_INIT_DATA"`
	// BotToken enables init data signature checks when set.
	BotToken string `yaml:"bot_token" envconfig:"SDVIG_BOT_TOKEN"`
	// BotName is used to build client invite links.
	BotName string `yaml:"bot_name" envconfig:"SDVIG_BOT_NAME"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"SDVIG_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"SDVIG_LOG_FORMAT"`
	// File receives log output; the terminal UI owns stdout.
	File string `yaml:"file" envconfig:"SDVIG_LOG_FILE"`
}

// Config aggregates every setting.
type Config struct {
	Figma    FigmaConfig    `yaml:"figma"`
	Storage  StorageConfig  `yaml:"storage"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

const (
	// DefaultFigmaBaseURL is the public Figma REST host.
	DefaultFigmaBaseURL = "https://api.figma.com"
	// DefaultBotName is the bot that owns invite links.
	DefaultBotName = "sdvig_bot"

	// FormatText selects slog's text handler.
	FormatText = "text"
	// FormatJSON selects slog's JSON handler.
	FormatJSON = "json"
)

// envPrefix namespaces the variable names envconfig derives from field paths.
const envPrefix = "SDVIG"

// DefaultPath returns ~/.sdvig/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".sdvig", "config.yaml"), nil
}

// Load reads configuration from a YAML file and environment variables. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config: %w", err)
			}
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize fills defaults and validates enumerated fields.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	cfg.Figma.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Figma.BaseURL), "/")
	if cfg.Figma.BaseURL == "" {
		cfg.Figma.BaseURL = DefaultFigmaBaseURL
	}
	if !strings.HasPrefix(cfg.Figma.BaseURL, "http://") && !strings.HasPrefix(cfg.Figma.BaseURL, "https://") {
		return fmt.Errorf("figma.base_url must be an http(s) url, got %q", cfg.Figma.BaseURL)
	}

	cfg.Telegram.BotName = strings.TrimPrefix(strings.TrimSpace(cfg.Telegram.BotName), "@")
	if cfg.Telegram.BotName == "" {
		cfg.Telegram.BotName = DefaultBotName
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	switch level {
	case "":
		level = "info"
	case "warning":
		level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q; allowed: debug, info, warn, error", cfg.Logging.Level)
	}
	cfg.Logging.Level = level

	format := strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	switch format {
	case "":
		format = FormatText
	case "kv", "pretty":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid logging.format %q; allowed: text, json", cfg.Logging.Format)
	}
	cfg.Logging.Format = format
	return nil
}
