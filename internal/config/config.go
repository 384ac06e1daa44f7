package config

import (
	"time"

	"github.com/olusolaa/rds-power-scheduler/internal/log"
)

type Config struct {
	Action   string         `mapstructure:"action" validate:"required"`
	Tag      TagConfig      `mapstructure:"tag" validate:"required"`
	Regions  []string       `mapstructure:"regions"`
	Settings SettingsConfig `mapstructure:"settings"`
	Reporter ReporterConfig `mapstructure:"reporter"`
}

type TagConfig struct {
	Key   string `mapstructure:"key" validate:"required"`
	Value string `mapstructure:"value" validate:"required"`
}

type SettingsConfig struct {
	LogLevel  log.Level  `mapstructure:"log_level"`
	LogFormat log.Format `mapstructure:"log_format"`

	// Concurrency bounds in-flight transition calls; RegionConcurrency
	// bounds parallel region discovery.
	Concurrency       int `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	RegionConcurrency int `mapstructure:"region_concurrency" validate:"gte=1,lte=32"`

	APIRateLimitRPS  int `mapstructure:"api_rate_limit_rps"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" validate:"gte=1,lte=10"`

	// DeadlineMargin is the wall-clock budget reserved before the
	// invocation deadline; once remaining time drops under it, no new
	// transitions are dispatched.
	DeadlineMargin time.Duration `mapstructure:"deadline_margin"`
}

type ReporterConfig struct {
	Type string      `mapstructure:"type" validate:"oneof=text json"`
	Text *TextConfig `mapstructure:"text,omitempty"`
}

type TextConfig struct {
	NoColor bool `mapstructure:"no_color"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:          log.LevelInfo,
			LogFormat:         log.FormatText,
			Concurrency:       5,
			RegionConcurrency: 4,
			APIRateLimitRPS:   20,
			RetryMaxAttempts:  5,
			DeadlineMargin:    15 * time.Second,
		},
		Reporter: ReporterConfig{
			Type: "text",
			Text: &TextConfig{NoColor: false},
		},
	}
}
