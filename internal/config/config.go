// Package config loads settings for the interaction tooling from a .env
// file, WEBACT_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WEBACT"

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Timing   TimingConfig   `mapstructure:"timing" yaml:"timing"`
	KeyPress KeyPressConfig `mapstructure:"keypress" yaml:"keypress"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File, when set, receives a rotated JSON copy of the log.
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

type BrowserConfig struct {
	Bin         string        `mapstructure:"bin" yaml:"bin"`
	Headless    bool          `mapstructure:"headless" yaml:"headless"`
	Stealth     bool          `mapstructure:"stealth" yaml:"stealth"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CursorSteps int           `mapstructure:"cursor_steps" yaml:"cursor_steps"`
}

// TimingConfig holds the settle intervals of the rich-text strategies.
type TimingConfig struct {
	CommandClearSettle  time.Duration `mapstructure:"command_clear_settle" yaml:"command_clear_settle"`
	CommandInsertSettle time.Duration `mapstructure:"command_insert_settle" yaml:"command_insert_settle"`
	CommandSelectSettle time.Duration `mapstructure:"command_select_settle" yaml:"command_select_settle"`
	PasteClearSettle    time.Duration `mapstructure:"paste_clear_settle" yaml:"paste_clear_settle"`
	PasteSettle         time.Duration `mapstructure:"paste_settle" yaml:"paste_settle"`
}

// Interaction converts the settings to engine timing.
func (t TimingConfig) Interaction() interaction.Timing {
	return interaction.Timing{
		CommandClearSettle:  t.CommandClearSettle,
		CommandInsertSettle: t.CommandInsertSettle,
		CommandSelectSettle: t.CommandSelectSettle,
		PasteClearSettle:    t.PasteClearSettle,
		PasteSettle:         t.PasteSettle,
	}
}

type KeyPressConfig struct {
	MinDelay time.Duration `mapstructure:"min_delay" yaml:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// SetDefaults registers every key with its default so environment
// overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 7)

	// -- Browser --
	v.SetDefault("browser.bin", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.stealth", true)
	v.SetDefault("browser.timeout", "2m")
	v.SetDefault("browser.cursor_steps", 20)

	// -- Timing --
	timing := interaction.DefaultTiming()
	v.SetDefault("timing.command_clear_settle", timing.CommandClearSettle)
	v.SetDefault("timing.command_insert_settle", timing.CommandInsertSettle)
	v.SetDefault("timing.command_select_settle", timing.CommandSelectSettle)
	v.SetDefault("timing.paste_clear_settle", timing.PasteClearSettle)
	v.SetDefault("timing.paste_settle", timing.PasteSettle)

	// -- Key press --
	v.SetDefault("keypress.min_delay", "50ms")
	v.SetDefault("keypress.max_delay", "150ms")
}

// Load reads envFiles (".env" when none are given; missing files are
// ignored) into the environment, then builds the configuration from
// defaults, the YAML file at path if non-empty, and WEBACT_* variables, in
// increasing precedence.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return NewConfigFromViper(v)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	durations := map[string]time.Duration{
		"timing.command_clear_settle":  c.Timing.CommandClearSettle,
		"timing.command_insert_settle": c.Timing.CommandInsertSettle,
		"timing.command_select_settle": c.Timing.CommandSelectSettle,
		"timing.paste_clear_settle":    c.Timing.PasteClearSettle,
		"timing.paste_settle":          c.Timing.PasteSettle,
		"keypress.min_delay":           c.KeyPress.MinDelay,
		"keypress.max_delay":           c.KeyPress.MaxDelay,
		"browser.timeout":              c.Browser.Timeout,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", key, d)
		}
	}
	if c.KeyPress.MinDelay > c.KeyPress.MaxDelay {
		return fmt.Errorf("keypress.min_delay (%s) exceeds keypress.max_delay (%s)",
			c.KeyPress.MinDelay, c.KeyPress.MaxDelay)
	}
	if c.Logger.MaxSizeMB < 0 || c.Logger.MaxBackups < 0 || c.Logger.MaxAgeDays < 0 {
		return fmt.Errorf("logger rotation settings must not be negative")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
