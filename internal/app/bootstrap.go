package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/rds-power-scheduler/internal/adapters/platform/aws"
	"github.com/olusolaa/rds-power-scheduler/internal/config"
	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
	"github.com/olusolaa/rds-power-scheduler/internal/core/service"
	"github.com/olusolaa/rds-power-scheduler/internal/errors"
	"github.com/olusolaa/rds-power-scheduler/internal/log"
	jsonreport "github.com/olusolaa/rds-power-scheduler/internal/reporting/json"
	textreport "github.com/olusolaa/rds-power-scheduler/internal/reporting/text"
)

// BootstrapFromViper wires config -> logger -> provider -> reporter ->
// engine for one invocation. Invalid input surfaces here, before any
// discovery runs.
func BootstrapFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)

	if err := validateConfig(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}

	action, err := domain.ParseAction(cfg.Action)
	if err != nil {
		logger.Errorf(ctx, err, "Invalid action %q", cfg.Action)
		return nil, err
	}

	request := domain.ActionRequest{
		Action:    action,
		TagFilter: domain.TagFilter{Key: cfg.Tag.Key, Value: cfg.Tag.Value},
		Regions:   cfg.Regions,
	}

	retry := aws.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.Settings.RetryMaxAttempts

	provider, err := aws.NewProvider(ctx, cfg.Settings.APIRateLimitRPS, retry,
		logger.WithFields(map[string]any{"provider": aws.ProviderTypeAWS}))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize AWS provider")
	}

	reporter, err := buildReporter(cfg, logger)
	if err != nil {
		return nil, err
	}

	engine, err := service.NewSchedulerEngine(
		provider, reporter, logger.WithFields(map[string]any{"component": "engine"}),
		cfg.Settings.RegionConcurrency, cfg.Settings.Concurrency, cfg.Settings.DeadlineMargin,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize scheduler engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return &Application{Engine: engine, Logger: logger, Request: request}, nil
}

func validateConfig(ctx context.Context, cfg *config.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			details.WriteString(fmt.Sprintf("\n - Field '%s': failed '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	} else {
		details.WriteString(" " + err.Error())
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(),
		"Check the configuration file, environment variables, and flags.")
}

func buildReporter(cfg *config.Config, logger ports.Logger) (ports.Reporter, error) {
	switch cfg.Reporter.Type {
	case textreport.ReporterTypeText, "":
		textCfg := textreport.Config{}
		if cfg.Reporter.Text != nil {
			textCfg.NoColor = cfg.Reporter.Text.NoColor
		}
		return textreport.NewReporter(textCfg, logger.WithFields(map[string]any{"component": "reporter"}))
	case jsonreport.ReporterTypeJSON:
		return jsonreport.NewReporter(logger.WithFields(map[string]any{"component": "reporter"}))
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Reporter.Type), "Supported: text, json")
	}
}
